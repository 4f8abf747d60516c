package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-api/internal/domain/repository"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/helpers"
	"github.com/oksasatya/recipe-api/pkg/metrics"
	"github.com/oksasatya/recipe-api/pkg/validation"
)

const (
	// MinPasswordLength counts UTF-16 code units, so a non-BMP character counts twice.
	MinPasswordLength = 6

	MsgInvalidEmail       = "Invalid email format"
	MsgPasswordTooShort   = "Password must be at least 6 characters long"
	MsgNameRequired       = "Name is required"
	MsgBirthdayFormat     = "Birthday must be in YYYY-MM-DD format"
	MsgBirthdayInvalid    = "Invalid birthday date"
	MsgEmailExists        = "Email already exists"
	MsgCredentialsMissing = "Email and password are required"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidUserID      = "Invalid user ID format"
	MsgInternal           = "Internal server error"
)

var (
	// the excluded class is every Unicode space plus \v and BOM
	emailPattern    = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	birthdayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type UserService struct {
	Repo     repo.UserRepository
	Logger   *logrus.Logger
	Validate *validator.Validate

	// Now and NewID are replaceable in tests.
	Now   func() time.Time
	NewID func() string

	// dummyHash is compared against on unknown-email logins.
	dummyHash string
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	dummy, err := helpers.HashPassword(uuid.NewString())
	if err != nil {
		helpers.LogError(logger, "hash dummy password failed", err, nil)
	}
	return &UserService{
		Repo:      users,
		Logger:    logger,
		Validate:  validation.New(),
		Now:       time.Now,
		NewID:     uuid.NewString,
		dummyHash: dummy,
	}
}

// RegisterInput carries the caller's registration data. Birthday is optional.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Birthday *string
}

// Register validates in, stores a new account and returns its profile.
// Checks run in a fixed order and the first failure is returned.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.UserProfile, error) {
	birthday, err := s.validateRegistration(in)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.ResultError).Inc()
		helpers.LogError(s.Logger, "hash password failed", err, nil)
		return nil, apperr.Wrap(apperr.ErrInternal, err, MsgInternal)
	}

	now := s.Now().UTC().Truncate(time.Millisecond)
	u := &entity.User{
		ID:           s.NewID(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Birthday:     birthday,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			metrics.Registrations.WithLabelValues(metrics.ResultConflict).Inc()
			return nil, apperr.Wrap(apperr.ErrConflict, err, MsgEmailExists)
		}
		metrics.Registrations.WithLabelValues(metrics.ResultError).Inc()
		helpers.LogError(s.Logger, "insert user failed", err, nil)
		return nil, apperr.Wrap(apperr.ErrInternal, err, MsgInternal)
	}

	metrics.Registrations.WithLabelValues(metrics.ResultSuccess).Inc()
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u.Profile(), nil
}

func (s *UserService) validateRegistration(in RegisterInput) (*string, error) {
	if !emailPattern.MatchString(in.Email) {
		return nil, apperr.With(apperr.ErrInvalidInput, MsgInvalidEmail)
	}
	if utf16Len(in.Password) < MinPasswordLength {
		return nil, apperr.With(apperr.ErrInvalidInput, MsgPasswordTooShort)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.With(apperr.ErrInvalidInput, MsgNameRequired)
	}
	if in.Birthday == nil || *in.Birthday == "" {
		return nil, nil
	}
	b := *in.Birthday
	if !birthdayPattern.MatchString(b) {
		return nil, apperr.With(apperr.ErrInvalidInput, MsgBirthdayFormat)
	}
	if err := s.Validate.Var(b, "isodate"); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, err, MsgBirthdayInvalid)
	}
	return &b, nil
}

// Login checks the credentials and returns the account's profile. Unknown
// emails and wrong passwords fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.UserProfile, error) {
	if email == "" || password == "" {
		metrics.Logins.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, apperr.With(apperr.ErrInvalidInput, MsgCredentialsMissing)
	}

	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
			helpers.LogError(s.Logger, "find user by email failed", err, nil)
			return nil, apperr.Wrap(apperr.ErrInternal, err, MsgInternal)
		}
		// spend the same bcrypt time as a real comparison
		helpers.CompareHashAndPassword(s.dummyHash, password)
		return nil, s.loginRejected("unknown email")
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, s.loginRejected("password mismatch")
	}

	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Debug("user logged in")
	}
	return u.Profile(), nil
}

func (s *UserService) loginRejected(reason string) error {
	metrics.Logins.WithLabelValues(metrics.ResultUnauthorized).Inc()
	if s.Logger != nil {
		s.Logger.WithField("reason", reason).Info("login rejected")
	}
	return apperr.With(apperr.ErrUnauthorized, MsgInvalidCredentials)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// GetProfile returns the profile for userID, or nil when no such user exists.
// A malformed id is an error and no lookup is made.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	if !IsUserID(userID) {
		return nil, apperr.With(apperr.ErrInvalidInput, MsgInvalidUserID)
	}
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		helpers.LogError(s.Logger, "find user by id failed", err, logrus.Fields{"user_id": userID})
		return nil, apperr.Wrap(apperr.ErrInternal, err, MsgInternal)
	}
	return u.Profile(), nil
}

// IsUserID reports whether id is a canonical 8-4-4-4-12 hex UUID, in either case.
func IsUserID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
