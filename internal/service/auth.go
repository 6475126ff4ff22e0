package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	internalRedis "github.com/CaptainFAHIM/uni-ride/internal/redis"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// TrialPeriod is the free membership window granted at registration.
const TrialPeriod = 7 * 24 * time.Hour

// MembershipActiveAt reports whether the membership window covers t.
// The boundary is strict: an expiry exactly equal to t counts as expired.
func MembershipActiveAt(user *domain.User, t time.Time) bool {
	return t.Before(user.MembershipExpiry)
}

// AuthService handles registration, login and session resolution.
type AuthService struct {
	userRepo repository.UserRepository
	sessions internalRedis.SessionStoreInterface
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessions internalRedis.SessionStoreInterface, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name       string
	Email      string
	Password   string
	Role       domain.UserRole
	University string
}

// Register creates a new account with a 7-day trial membership and logs it in.
// Returns the created user and the issued session token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" || req.University == "" {
		return nil, "", ErrMissingFields
	}

	if req.Role != domain.UserRoleRider && req.Role != domain.UserRolePassenger {
		return nil, "", ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &domain.User{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             req.Role,
		University:       req.University,
		MembershipActive: true,
		MembershipExpiry: now.Add(TrialPeriod),
		RegisteredAt:     now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index is the backstop for a registration racing the
		// existence check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and issues a new session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout discards the session for the given token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves a session token to a user record. Every failure mode,
// including unknown tokens and storage faults, collapses to nil.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		s.logger.Error("session lookup failed", zap.Error(err))
		return nil
	}
	if userID == "" {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("user lookup failed", zap.Error(err))
		}
		return nil
	}

	return user
}
