package service

import (
	"context"
	"errors"
	"time"

	"liftledger/workout-tracker/internal/domain"
	"liftledger/workout-tracker/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// DeleteAccount removes the user and all data scoped to them. Each
	// per-collection delete is best-effort: failures are logged and the
	// remaining deletes still run; the first failure is returned.
	DeleteAccount(ctx context.Context, userID string) error
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	programRepo   repository.ProgramRepository
	logRepo       repository.WorkoutLogRepository
	recordRepo    repository.PersonalRecordRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	logRepo repository.WorkoutLogRepository,
	recordRepo repository.PersonalRecordRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		programRepo:   programRepo,
		logRepo:       logRepo,
		recordRepo:    recordRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := domain.NewUser(name, email, string(hashedPassword))
	if err := s.userRepo.Create(ctx, &user); err != nil {
		// The unique email index covers the race between the GetByEmail
		// check and the insert.
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// DeleteAccount removes the user document plus every program, log, and
// record scoped to them.
func (s *authService) DeleteAccount(ctx context.Context, userID string) error {
	var firstErr error
	keep := func(err error, what string) {
		if err == nil {
			return
		}
		log.WithError(err).WithField("userId", userID).
			Errorf("account removal: failed to delete %s", what)
		if firstErr == nil {
			firstErr = err
		}
	}

	keep(s.programRepo.DeleteByUserID(ctx, userID), "programs")
	keep(s.logRepo.DeleteByUserID(ctx, userID), "workout logs")
	keep(s.recordRepo.DeleteByUserID(ctx, userID), "personal records")

	if err := s.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		keep(err, "user")
	}
	return firstErr
}

// Claims carried in issued tokens; the auth middleware mirrors this shape.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
