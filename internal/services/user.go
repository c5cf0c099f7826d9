package services

//go:generate mockgen -source=user.go -destination=user_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/repositories"
)

// ProfileWriter updates and deletes user rows.
type ProfileWriter interface {
	Update(ctx context.Context, id int64, upd models.UserUpdate) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// RawProfileReader returns an unfiltered users row.
type RawProfileReader interface {
	GetRawByID(ctx context.Context, id int64) (map[string]any, error)
}

// UpdateProfileInput holds a partial profile update. Empty Email, Password
// and Handle are ignored; nil pointers leave the column unchanged.
type UpdateProfileInput struct {
	Email    string
	Password string
	Name     *string
	Handle   *string
	Bio      *string
	Location *string
	Website  *string
}

// UserService manages the authenticated user's own profile.
type UserService struct {
	reader     UserReader
	raw        RawProfileReader
	writer     ProfileWriter
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(reader UserReader, raw RawProfileReader, writer ProfileWriter, bcryptCost int) *UserService {
	return &UserService{
		reader:     reader,
		raw:        raw,
		writer:     writer,
		bcryptCost: passwordCost(bcryptCost),
	}
}

// GetProfile returns the user or ErrUserNotFound.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get profile", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update. The password is re-hashed and the
// handle validated; a taken email or handle is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}

	upd := models.UserUpdate{
		Name:     in.Name,
		Bio:      in.Bio,
		Location: in.Location,
		Website:  in.Website,
	}

	if email := strings.TrimSpace(in.Email); email != "" {
		other, err := s.reader.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != userID {
			return ErrUserAlreadyExists
		}
		upd.Email = &email
	}

	if in.Handle != nil && *in.Handle != "" {
		if !ValidHandle(*in.Handle) {
			return ErrInvalidHandle
		}
		owner, err := s.reader.GetByHandle(ctx, *in.Handle)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != userID {
			return ErrHandleTaken
		}
		upd.Handle = in.Handle
	}

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "error", err)
			return err
		}
		password := string(hashed)
		upd.Password = &password
	}

	err := s.writer.Update(ctx, userID, upd)
	if errors.Is(err, repositories.ErrDuplicate) {
		return ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "error", err)
		return err
	}
	return nil
}

// DeleteProfile removes the user row. Posts and refresh tokens are left in place.
func (s *UserService) DeleteProfile(ctx context.Context, userID int64) error {
	deleted, err := s.writer.Delete(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete profile", "user_id", userID, "error", err)
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// GetRawProfile returns the stored users row without the password hash.
func (s *UserService) GetRawProfile(ctx context.Context, userID int64) (map[string]any, error) {
	row, err := s.raw.GetRawByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get raw profile", "user_id", userID, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrUserNotFound
	}
	delete(row, "password")
	return row, nil
}
