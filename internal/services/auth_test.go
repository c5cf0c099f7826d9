package services_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jmoiron/sqlx"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/repositories"
	"github.com/sbilibin2017/echo/internal/services"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type authMocks struct {
	reader      *services.MockUserReader
	writer      *services.MockUserWriter
	tokenReader *services.MockRefreshTokenReader
	tokenWriter *services.MockRefreshTokenWriter
	jwt         *services.MockAccessTokenGenerator
	tx          *services.MockTransactor
	kafka       *services.MockKafkaWriter
}

func newAuthService(ctrl *gomock.Controller) (*services.AuthService, authMocks) {
	m := authMocks{
		reader:      services.NewMockUserReader(ctrl),
		writer:      services.NewMockUserWriter(ctrl),
		tokenReader: services.NewMockRefreshTokenReader(ctrl),
		tokenWriter: services.NewMockRefreshTokenWriter(ctrl),
		jwt:         services.NewMockAccessTokenGenerator(ctrl),
		tx:          services.NewMockTransactor(ctrl),
		kafka:       services.NewMockKafkaWriter(ctrl),
	}
	svc := services.NewAuthService(m.reader, m.writer, m.tokenReader, m.tokenWriter, m.jwt, m.tx,
		services.WithBcryptCost(bcrypt.MinCost),
		services.WithKafkaWriter(m.kafka),
		services.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, m
}

func (m authMocks) expectTransaction() {
	m.tx.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func (m authMocks) expectEvent(eventType string) {
	m.kafka.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			if len(msgs) != 1 || !strings.Contains(string(msgs[0].Value), `"type":"`+eventType+`"`) {
				return errors.New("unexpected event")
			}
			return nil
		})
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func ptr[T any](v T) *T { return &v }

func TestAuthService_Signup(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name    string
		input   services.SignupInput
		setup   func(m authMocks)
		wantID  int64
		wantErr error
	}{
		{
			name:  "successful signup",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
				m.writer.EXPECT().
					Save(gomock.Any(), "jane@example.com", gomock.Any(), (*string)(nil), (*string)(nil)).
					DoAndReturn(func(ctx context.Context, email, hash string, name, handle *string) (int64, error) {
						if bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")) != nil {
							return 0, errors.New("password not hashed")
						}
						return 1, nil
					})
				m.expectEvent(models.EventUserSignedUp)
			},
			wantID: 1,
		},
		{
			name:  "signup with name and handle",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret", Name: "Jane", Handle: "jane_doe"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
				m.reader.EXPECT().GetByHandle(gomock.Any(), "jane_doe").Return(nil, nil)
				m.writer.EXPECT().
					Save(gomock.Any(), "jane@example.com", gomock.Any(), ptr("Jane"), ptr("jane_doe")).
					Return(int64(2), nil)
				m.expectEvent(models.EventUserSignedUp)
			},
			wantID: 2,
		},
		{
			name:    "missing password",
			input:   services.SignupInput{Email: "jane@example.com"},
			setup:   func(m authMocks) {},
			wantErr: services.ErrMissingFields,
		},
		{
			name:    "missing email",
			input:   services.SignupInput{Email: "  ", Password: "secret"},
			setup:   func(m authMocks) {},
			wantErr: services.ErrMissingFields,
		},
		{
			name:  "email already exists",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(&models.UserDB{ID: 1}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:  "handle taken",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret", Handle: "taken"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
				m.reader.EXPECT().GetByHandle(gomock.Any(), "taken").Return(&models.UserDB{ID: 9}, nil)
			},
			wantErr: services.ErrHandleTaken,
		},
		{
			name:  "duplicate on insert",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
				m.writer.EXPECT().
					Save(gomock.Any(), "jane@example.com", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), repositories.ErrDuplicate)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:  "reader error",
			input: services.SignupInput{Email: "jane@example.com", Password: "secret"},
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newAuthService(ctrl)
			tt.setup(m)

			id, err := svc.Signup(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthService_Signup_InvalidHandleRejectedBeforePersistence(t *testing.T) {
	handles := []string{"ab", "has space", "dash-ed", strings.Repeat("x", 31), "émile", "semi;colon"}

	for _, handle := range handles {
		t.Run(handle, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no repository expectations: any call fails the test
			svc, _ := newAuthService(ctrl)

			_, err := svc.Signup(context.Background(), services.SignupInput{
				Email: "jane@example.com", Password: "secret", Handle: handle,
			})
			assert.ErrorIs(t, err, services.ErrInvalidHandle)
		})
	}
}

func TestValidHandle(t *testing.T) {
	assert.True(t, services.ValidHandle("abc"))
	assert.True(t, services.ValidHandle("Jane_Doe_99"))
	assert.True(t, services.ValidHandle(strings.Repeat("a", 30)))
	assert.False(t, services.ValidHandle("ab"))
	assert.False(t, services.ValidHandle(strings.Repeat("a", 31)))
	assert.False(t, services.ValidHandle("a.b.c"))
}

func TestNewAuthService_OutOfRangeBcryptCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "above max", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
		{name: "below min", cost: bcrypt.MinCost - 1, want: bcrypt.DefaultCost},
		{name: "zero", cost: 0, want: bcrypt.DefaultCost},
		{name: "min", cost: bcrypt.MinCost, want: bcrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewAuthService(nil, nil, nil, nil, nil, nil, services.WithBcryptCost(tt.cost))

			dummy := services.DummyHash(svc)
			require.NotEmpty(t, dummy)
			cost, err := bcrypt.Cost(dummy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)

			users := services.NewUserService(nil, nil, nil, tt.cost)
			assert.Equal(t, tt.want, services.BcryptCost(users))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.UserDB{ID: 7, Email: "jane@example.com", Password: string(hashed)}
	jwtErr := errors.New("jwt error")

	tests := []struct {
		name       string
		password   string
		setup      func(m authMocks)
		wantAccess string
		wantErr    error
	}{
		{
			name:     "successful login",
			password: "secret",
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(user, nil)
				m.jwt.EXPECT().Generate(gomock.Any(), int64(7), "jane@example.com").Return("access-1", nil)
				m.tokenWriter.EXPECT().
					Save(gomock.Any(), int64(7), gomock.Any(), fixedNow.Add(30*24*time.Hour)).
					Return(nil)
				m.expectEvent(models.EventUserLoggedIn)
			},
			wantAccess: "access-1",
		},
		{
			name:     "unknown email",
			password: "secret",
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrong",
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(user, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "jwt error",
			password: "secret",
			setup: func(m authMocks) {
				m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(user, nil)
				m.jwt.EXPECT().Generate(gomock.Any(), int64(7), "jane@example.com").Return("", jwtErr)
			},
			wantErr: jwtErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newAuthService(ctrl)
			tt.setup(m)

			access, refresh, err := svc.Login(context.Background(), "jane@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, access)
			assert.Len(t, refresh, 128)
			_, err = hex.DecodeString(refresh)
			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Login_StoresOnlyTokenHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAuthService(ctrl)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	var storedHash string
	m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		Return(&models.UserDB{ID: 7, Email: "jane@example.com", Password: string(hashed)}, nil)
	m.jwt.EXPECT().Generate(gomock.Any(), int64(7), "jane@example.com").Return("access", nil)
	m.tokenWriter.EXPECT().Save(gomock.Any(), int64(7), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, userID int64, hash string, expiresAt time.Time) error {
			storedHash = hash
			return nil
		})
	m.expectEvent(models.EventUserLoggedIn)

	_, refresh, err := svc.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, storedHash)
	assert.Equal(t, sha256Hex(refresh), storedHash)
}

func TestAuthService_Refresh(t *testing.T) {
	const raw = "presented-refresh-token"
	hash := sha256Hex(raw)
	dbErr := errors.New("db error")

	liveRow := &models.RefreshTokenDB{ID: 11, UserID: 7, TokenHash: hash, ExpiresAt: fixedNow.Add(time.Hour)}
	user := &models.UserDB{ID: 7, Email: "jane@example.com"}

	tests := []struct {
		name       string
		raw        string
		setup      func(m authMocks)
		wantReason error
		wantErr    error
	}{
		{
			name: "rotates live token",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).Return(liveRow, nil)
				m.tokenWriter.EXPECT().RevokeByID(gomock.Any(), int64(11)).Return(true, nil)
				m.reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(user, nil)
				m.tokenWriter.EXPECT().Save(gomock.Any(), int64(7), gomock.Not(hash), fixedNow.Add(30*24*time.Hour)).Return(nil)
				m.jwt.EXPECT().Generate(gomock.Any(), int64(7), "jane@example.com").Return("access-2", nil)
			},
		},
		{
			name:       "missing cookie",
			raw:        "",
			setup:      func(m authMocks) {},
			wantReason: services.ErrRefreshTokenMissing,
		},
		{
			name: "unknown token",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).Return(nil, nil)
			},
			wantReason: services.ErrRefreshTokenInvalid,
		},
		{
			name: "revoked token is reported as reuse",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).
					Return(&models.RefreshTokenDB{ID: 11, UserID: 7, Revoked: true, ExpiresAt: fixedNow.Add(time.Hour)}, nil)
				m.expectEvent(models.EventRefreshTokenReused)
			},
			wantReason: services.ErrRefreshTokenRevoked,
		},
		{
			name: "expired token",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).
					Return(&models.RefreshTokenDB{ID: 11, UserID: 7, ExpiresAt: fixedNow.Add(-time.Second)}, nil)
			},
			wantReason: services.ErrRefreshTokenExpired,
		},
		{
			name: "concurrent rotation already revoked it",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).Return(liveRow, nil)
				m.tokenWriter.EXPECT().RevokeByID(gomock.Any(), int64(11)).Return(false, nil)
			},
			wantReason: services.ErrRefreshTokenRevoked,
		},
		{
			name: "user deleted",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).Return(liveRow, nil)
				m.tokenWriter.EXPECT().RevokeByID(gomock.Any(), int64(11)).Return(true, nil)
				m.reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, nil)
			},
			wantReason: services.ErrRefreshTokenInvalid,
		},
		{
			name: "database error is not an auth failure",
			raw:  raw,
			setup: func(m authMocks) {
				m.expectTransaction()
				m.tokenReader.EXPECT().GetByHashForUpdate(gomock.Any(), hash).Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newAuthService(ctrl)
			tt.setup(m)

			access, refresh, err := svc.Refresh(context.Background(), tt.raw)
			switch {
			case tt.wantReason != nil:
				assert.ErrorIs(t, err, services.ErrUnauthenticated)
				assert.ErrorIs(t, err, tt.wantReason)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, services.ErrUnauthenticated)
			default:
				require.NoError(t, err)
				assert.Equal(t, "access-2", access)
				assert.Len(t, refresh, 128)
				assert.NotEqual(t, raw, refresh)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	const raw = "presented-refresh-token"
	hash := sha256Hex(raw)

	t.Run("no token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newAuthService(ctrl)
		assert.NoError(t, svc.Logout(context.Background(), ""))
	})

	t.Run("twice with the same token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newAuthService(ctrl)
		gomock.InOrder(
			m.tokenReader.EXPECT().GetByHash(gomock.Any(), hash).Return(&models.RefreshTokenDB{ID: 11, UserID: 7}, nil),
			m.tokenWriter.EXPECT().RevokeByHash(gomock.Any(), hash).Return(nil),
			m.tokenReader.EXPECT().GetByHash(gomock.Any(), hash).Return(&models.RefreshTokenDB{ID: 11, UserID: 7, Revoked: true}, nil),
			m.tokenWriter.EXPECT().RevokeByHash(gomock.Any(), hash).Return(nil),
		)
		m.expectEvent(models.EventUserLoggedOut)

		assert.NoError(t, svc.Logout(context.Background(), raw))
		assert.NoError(t, svc.Logout(context.Background(), raw))
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newAuthService(ctrl)
		m.tokenReader.EXPECT().GetByHash(gomock.Any(), hash).Return(nil, nil)
		m.tokenWriter.EXPECT().RevokeByHash(gomock.Any(), hash).Return(nil)

		assert.NoError(t, svc.Logout(context.Background(), raw))
	})

	t.Run("revoke error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newAuthService(ctrl)
		m.tokenReader.EXPECT().GetByHash(gomock.Any(), hash).Return(nil, nil)
		m.tokenWriter.EXPECT().RevokeByHash(gomock.Any(), hash).Return(errors.New("db error"))

		assert.Error(t, svc.Logout(context.Background(), raw))
	})
}

func TestAuthService_EventFailureDoesNotFailLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAuthService(ctrl)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	m.reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
		Return(&models.UserDB{ID: 7, Email: "jane@example.com", Password: string(hashed)}, nil)
	m.jwt.EXPECT().Generate(gomock.Any(), int64(7), "jane@example.com").Return("access", nil)
	m.tokenWriter.EXPECT().Save(gomock.Any(), int64(7), gomock.Any(), gomock.Any()).Return(nil)
	m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	access, _, err := svc.Login(context.Background(), "jane@example.com", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "access", access)
}

func TestAuthService_WithoutKafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	svc := services.NewAuthService(reader, writer, nil, nil, nil, nil, services.WithBcryptCost(bcrypt.MinCost))

	reader.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
	writer.EXPECT().Save(gomock.Any(), "jane@example.com", gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(3), nil)

	id, err := svc.Signup(context.Background(), services.SignupInput{Email: "jane@example.com", Password: "secret"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
}
