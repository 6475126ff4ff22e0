package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// Demo account credentials. The endpoint behind this is env-gated and meant
// for demos only.
const (
	DemoRiderEmail     = "rider@example.com"
	DemoPassengerEmail = "passenger@example.com"
	DemoPassword       = "password123"
	demoUniversity     = "Dhaka University"
)

// SeedService provisions the two fixed demo accounts.
type SeedService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(userRepo repository.UserRepository, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{userRepo: userRepo, logger: logger}
}

// SeedResult reports what the seed run did.
type SeedResult struct {
	RiderEmail       string
	PassengerEmail   string
	Password         string
	RiderCreated     bool
	PassengerCreated bool
}

// Seed creates the demo rider and passenger if they do not already exist.
// Idempotent: existing accounts are left untouched.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{
		RiderEmail:     DemoRiderEmail,
		PassengerEmail: DemoPassengerEmail,
		Password:       DemoPassword,
	}

	created, err := s.ensureUser(ctx, "Demo Rider", DemoRiderEmail, domain.UserRoleRider)
	if err != nil {
		return nil, err
	}
	result.RiderCreated = created

	created, err = s.ensureUser(ctx, "Demo Passenger", DemoPassengerEmail, domain.UserRolePassenger)
	if err != nil {
		return nil, err
	}
	result.PassengerCreated = created

	return result, nil
}

func (s *SeedService) ensureUser(ctx context.Context, name, email string, role domain.UserRole) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	now := time.Now()
	user := &domain.User{
		ID:               uuid.New().String(),
		Name:             name,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		University:       demoUniversity,
		MembershipActive: true,
		MembershipExpiry: now.Add(MembershipPeriod),
		RegisteredAt:     now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent seed run may have won the race; treat that as done.
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("seeded demo account", zap.String("email", email), zap.String("role", string(role)))
	return true, nil
}
