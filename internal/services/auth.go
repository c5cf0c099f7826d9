package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/repositories"
)

const (
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
	refreshTokenBytes      = 64
)

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByHandle(ctx context.Context, handle string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines the insert used by signup.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash string, name, handle *string) (int64, error)
}

// RefreshTokenReader looks up stored refresh tokens.
type RefreshTokenReader interface {
	GetByHash(ctx context.Context, tokenHash string) (*models.RefreshTokenDB, error)
	GetByHashForUpdate(ctx context.Context, tokenHash string) (*models.RefreshTokenDB, error)
}

// RefreshTokenWriter stores and revokes refresh tokens.
type RefreshTokenWriter interface {
	Save(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	RevokeByID(ctx context.Context, id int64) (bool, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// AccessTokenGenerator signs access tokens.
type AccessTokenGenerator interface {
	Generate(ctx context.Context, userID int64, email string) (string, error)
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

// SignupInput is the data accepted by Signup.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Handle   string
}

// AuthService handles signup, login and the refresh token lifecycle.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	tokenReader RefreshTokenReader
	tokenWriter RefreshTokenWriter
	jwt         AccessTokenGenerator
	tx          Transactor
	kafkaWriter KafkaWriter

	bcryptCost int
	refreshTTL time.Duration
	now        func() time.Time
	dummyHash  []byte
}

// AuthOpt configures an AuthService.
type AuthOpt func(*AuthService)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) AuthOpt {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

// WithRefreshTokenTTL sets the refresh token lifetime.
func WithRefreshTokenTTL(ttl time.Duration) AuthOpt {
	return func(s *AuthService) {
		s.refreshTTL = ttl
	}
}

// WithKafkaWriter enables auth event publishing.
func WithKafkaWriter(w KafkaWriter) AuthOpt {
	return func(s *AuthService) {
		s.kafkaWriter = w
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) AuthOpt {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokenReader RefreshTokenReader,
	tokenWriter RefreshTokenWriter,
	jwt AccessTokenGenerator,
	tx Transactor,
	opts ...AuthOpt,
) *AuthService {
	svc := &AuthService{
		reader:      reader,
		writer:      writer,
		tokenReader: tokenReader,
		tokenWriter: tokenWriter,
		jwt:         jwt,
		tx:          tx,
		bcryptCost:  bcrypt.DefaultCost,
		refreshTTL:  defaultRefreshTokenTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}

	svc.bcryptCost = passwordCost(svc.bcryptCost)

	// compared against when the email is unknown
	dummy, err := bcrypt.GenerateFromPassword([]byte("echo-login-timing"), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to prepare login dummy hash", "cost", svc.bcryptCost, "error", err)
		dummy, _ = bcrypt.GenerateFromPassword([]byte("echo-login-timing"), bcrypt.DefaultCost)
	}
	svc.dummyHash = dummy
	return svc
}

// passwordCost falls back to bcrypt.DefaultCost for costs bcrypt rejects.
func passwordCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// ValidHandle reports whether a handle has the allowed shape.
func ValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// Signup registers a new user and returns its id.
func (svc *AuthService) Signup(ctx context.Context, in SignupInput) (int64, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return 0, ErrMissingFields
	}

	var name, handle *string
	if in.Name != "" {
		name = &in.Name
	}
	if in.Handle != "" {
		if !ValidHandle(in.Handle) {
			return 0, ErrInvalidHandle
		}
		handle = &in.Handle
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return 0, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "email", email)
		return 0, ErrUserAlreadyExists
	}

	if handle != nil {
		owner, err := svc.reader.GetByHandle(ctx, *handle)
		if err != nil {
			logger.Log.Errorw("failed to check handle", "err", err)
			return 0, err
		}
		if owner != nil {
			return 0, ErrHandleTaken
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	id, err := svc.writer.Save(ctx, email, string(hashedPassword), name, handle)
	if errors.Is(err, repositories.ErrDuplicate) {
		// lost a race with a concurrent signup
		return 0, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return 0, err
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventUserSignedUp, id, svc.now())
	return id, nil
}

// Login verifies credentials and returns a new access token and raw refresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	user, err := svc.reader.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(svc.dummyHash, []byte(password))
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "user_id", user.ID)
		return "", "", ErrInvalidCredentials
	}

	accessToken, err = svc.jwt.Generate(ctx, user.ID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", "", err
	}

	refreshToken, err = svc.createRefreshToken(ctx, user.ID)
	if err != nil {
		return "", "", err
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventUserLoggedIn, user.ID, svc.now())
	return accessToken, refreshToken, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// one issued together with a new access token, atomically. Every rejection
// wraps ErrUnauthenticated.
func (svc *AuthService) Refresh(ctx context.Context, rawToken string) (accessToken, refreshToken string, err error) {
	if rawToken == "" {
		return "", "", unauthenticated(ErrRefreshTokenMissing)
	}
	tokenHash := hashToken(rawToken)

	var reusedBy int64
	err = svc.tx.WithTransaction(ctx, func(ctx context.Context, _ *sqlx.Tx) error {
		row, err := svc.tokenReader.GetByHashForUpdate(ctx, tokenHash)
		if err != nil {
			return err
		}
		if row == nil {
			return unauthenticated(ErrRefreshTokenInvalid)
		}
		if row.Revoked {
			reusedBy = row.UserID
			return unauthenticated(ErrRefreshTokenRevoked)
		}
		if !row.ExpiresAt.After(svc.now()) {
			return unauthenticated(ErrRefreshTokenExpired)
		}

		revoked, err := svc.tokenWriter.RevokeByID(ctx, row.ID)
		if err != nil {
			return err
		}
		if !revoked {
			// a concurrent rotation won
			return unauthenticated(ErrRefreshTokenRevoked)
		}

		user, err := svc.reader.GetByID(ctx, row.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return unauthenticated(ErrRefreshTokenInvalid)
		}

		newRefresh, err := svc.createRefreshToken(ctx, row.UserID)
		if err != nil {
			return err
		}
		newAccess, err := svc.jwt.Generate(ctx, user.ID, user.Email)
		if err != nil {
			return err
		}

		accessToken, refreshToken = newAccess, newRefresh
		return nil
	})

	if reusedBy != 0 {
		logger.Log.Warnw("revoked refresh token presented", "user_id", reusedBy)
		publishEvent(ctx, svc.kafkaWriter, models.EventRefreshTokenReused, reusedBy, svc.now())
	}
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			logger.Log.Errorw("failed to refresh token", "err", err)
		}
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Logout revokes the refresh token if one is given. Unknown, revoked or
// missing tokens are not an error.
func (svc *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	tokenHash := hashToken(rawToken)

	row, err := svc.tokenReader.GetByHash(ctx, tokenHash)
	if err != nil {
		logger.Log.Errorw("failed to look up refresh token", "err", err)
		return err
	}

	if err := svc.tokenWriter.RevokeByHash(ctx, tokenHash); err != nil {
		logger.Log.Errorw("failed to revoke refresh token", "err", err)
		return err
	}

	if row != nil && !row.Revoked {
		publishEvent(ctx, svc.kafkaWriter, models.EventUserLoggedOut, row.UserID, svc.now())
	}
	return nil
}

// createRefreshToken stores the hash of a fresh random token and returns the raw value.
func (svc *AuthService) createRefreshToken(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", err
	}
	raw := hex.EncodeToString(buf)

	if err := svc.tokenWriter.Save(ctx, userID, hashToken(raw), svc.now().Add(svc.refreshTTL)); err != nil {
		logger.Log.Errorw("failed to save refresh token", "user_id", userID, "err", err)
		return "", err
	}
	return raw, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
