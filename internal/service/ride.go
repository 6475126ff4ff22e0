package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	internalRedis "github.com/CaptainFAHIM/uni-ride/internal/redis"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// Seat bounds of the add-ride form.
const (
	minAvailableSeats = 1
	maxAvailableSeats = 10
)

// RideService handles ride offer operations.
type RideService struct {
	rideRepo repository.RideRepository
	cache    internalRedis.RideCacheInterface
	logger   *zap.Logger
}

// NewRideService creates a new RideService. The cache is optional.
func NewRideService(rideRepo repository.RideRepository, cache internalRedis.RideCacheInterface, logger *zap.Logger) *RideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RideService{
		rideRepo: rideRepo,
		cache:    cache,
		logger:   logger,
	}
}

// AddRideRequest contains the parameters for posting a ride offer.
type AddRideRequest struct {
	University     string
	StartLocation  string
	DepartureTime  time.Time
	AvailableSeats int
	Fare           float64
	Description    string
}

// AddRide posts a new ride offer. Only riders with an active membership may
// post; the role check runs first so a passenger always gets the role error.
func (s *RideService) AddRide(ctx context.Context, owner *domain.User, req AddRideRequest) (*domain.Ride, error) {
	if owner == nil {
		return nil, ErrNotAuthenticated
	}

	if owner.Role != domain.UserRoleRider {
		return nil, ErrNotRider
	}

	if !MembershipActiveAt(owner, time.Now()) {
		return nil, ErrMembershipExpired
	}

	if req.University == "" || req.StartLocation == "" || req.DepartureTime.IsZero() {
		return nil, ErrMissingFields
	}

	if req.AvailableSeats < minAvailableSeats || req.AvailableSeats > maxAvailableSeats {
		return nil, ErrInvalidSeatCount
	}

	if req.Fare < 0 {
		return nil, ErrInvalidFare
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		RiderID:        owner.ID,
		University:     req.University,
		StartLocation:  req.StartLocation,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		Fare:           req.Fare,
		Status:         domain.RideStatusActive,
		Description:    req.Description,
		CreatedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// ListOwnedRides returns all rides owned by a rider, departure time ascending.
// The caller partitions by status for presentation.
func (s *RideService) ListOwnedRides(ctx context.Context, owner *domain.User) ([]*domain.Ride, error) {
	if owner == nil {
		return nil, ErrNotAuthenticated
	}

	return s.rideRepo.ListByRider(ctx, owner.ID)
}

// SearchRides returns active rides matching the filter, joined with rider
// identity. Anonymous searches are allowed; an authenticated requester must
// hold an active membership.
func (s *RideService) SearchRides(ctx context.Context, requester *domain.User, filter repository.RideFilter) ([]*domain.RideWithRider, error) {
	if requester != nil && !MembershipActiveAt(requester, time.Now()) {
		return nil, ErrMembershipExpired
	}

	return s.rideRepo.Search(ctx, filter)
}

// GetRide retrieves a ride detail with rider identity, cache-backed.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.RideWithRider, error) {
	if rideID == "" {
		return nil, ErrMissingFields
	}

	if s.cache != nil {
		cached, err := s.cache.GetRide(ctx, rideID)
		if err != nil {
			s.logger.Warn("ride cache read failed", zap.Error(err))
		}
		if cached != nil {
			return cachedToRide(cached), nil
		}
	}

	result, err := s.rideRepo.GetByIDWithRider(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRide(ctx, rideToCached(result)); err != nil {
			s.logger.Warn("ride cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

// CompleteRide marks a ride completed. Only the owning rider may complete;
// a missing ride reports not-found before any ownership check.
func (s *RideService) CompleteRide(ctx context.Context, actor *domain.User, rideID string) (*domain.Ride, error) {
	ride, err := s.authorizeOwner(ctx, actor, rideID)
	if err != nil {
		return nil, err
	}

	if err := s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusCompleted); err != nil {
		return nil, err
	}
	ride.Status = domain.RideStatusCompleted

	s.invalidate(ctx, rideID)
	return ride, nil
}

// DeleteRide removes a ride. Only the owning rider may delete.
func (s *RideService) DeleteRide(ctx context.Context, actor *domain.User, rideID string) error {
	if _, err := s.authorizeOwner(ctx, actor, rideID); err != nil {
		return err
	}

	if err := s.rideRepo.Delete(ctx, rideID); err != nil {
		return err
	}

	s.invalidate(ctx, rideID)
	return nil
}

func (s *RideService) authorizeOwner(ctx context.Context, actor *domain.User, rideID string) (*domain.Ride, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if rideID == "" {
		return nil, ErrMissingFields
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.RiderID != actor.ID {
		return nil, ErrNotRideOwner
	}

	return ride, nil
}

func (s *RideService) invalidate(ctx context.Context, rideID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRide(ctx, rideID); err != nil {
		s.logger.Warn("ride cache invalidation failed", zap.String("ride_id", rideID), zap.Error(err))
	}
}

func cachedToRide(c *internalRedis.CachedRide) *domain.RideWithRider {
	return &domain.RideWithRider{
		Ride: domain.Ride{
			ID:             c.ID,
			RiderID:        c.RiderID,
			University:     c.University,
			StartLocation:  c.StartLocation,
			DepartureTime:  c.DepartureTime,
			AvailableSeats: c.AvailableSeats,
			Fare:           c.Fare,
			Status:         domain.RideStatus(c.Status),
			Description:    c.Description,
		},
		Rider: domain.Profile{
			ID:    c.RiderID,
			Name:  c.RiderName,
			Email: c.RiderEmail,
			Phone: c.RiderPhone,
		},
	}
}

func rideToCached(r *domain.RideWithRider) *internalRedis.CachedRide {
	return &internalRedis.CachedRide{
		ID:             r.Ride.ID,
		RiderID:        r.Ride.RiderID,
		RiderName:      r.Rider.Name,
		RiderEmail:     r.Rider.Email,
		RiderPhone:     r.Rider.Phone,
		University:     r.Ride.University,
		StartLocation:  r.Ride.StartLocation,
		DepartureTime:  r.Ride.DepartureTime,
		AvailableSeats: r.Ride.AvailableSeats,
		Fare:           r.Ride.Fare,
		Status:         string(r.Ride.Status),
		Description:    r.Ride.Description,
	}
}
