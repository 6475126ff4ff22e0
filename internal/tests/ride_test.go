package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

func activeRider(id string) *domain.User {
	return &domain.User{
		ID:               id,
		Name:             "Rider " + id,
		Email:            id + "@du.ac.bd",
		Role:             domain.UserRoleRider,
		University:       "Dhaka University",
		MembershipActive: true,
		MembershipExpiry: time.Now().Add(24 * time.Hour),
	}
}

func validRideRequest() service.AddRideRequest {
	return service.AddRideRequest{
		University:     "Dhaka University",
		StartLocation:  "Mirpur 10",
		DepartureTime:  time.Now().Add(2 * time.Hour),
		AvailableSeats: 3,
		Fare:           120,
	}
}

func TestAddRide(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, nil, nil)

	rider := activeRider("r1")
	ride, err := svc.AddRide(context.Background(), rider, validRideRequest())
	if err != nil {
		t.Fatalf("AddRide() error = %v", err)
	}
	if ride.RiderID != rider.ID {
		t.Errorf("ride.RiderID = %s, want %s", ride.RiderID, rider.ID)
	}
	if ride.Status != domain.RideStatusActive {
		t.Errorf("ride.Status = %s, want active", ride.Status)
	}
	if rideRepo.GetRide(ride.ID) == nil {
		t.Error("ride not persisted")
	}
}

func TestAddRide_PassengerRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewRideService(NewMockRideRepository(), nil, nil)

	// The role check outranks membership: an expired passenger still gets the
	// role error, not the membership one.
	for _, expiry := range []time.Time{time.Now().Add(24 * time.Hour), time.Now().Add(-24 * time.Hour)} {
		passenger := &domain.User{
			ID:               "p1",
			Role:             domain.UserRolePassenger,
			MembershipExpiry: expiry,
		}
		if _, err := svc.AddRide(context.Background(), passenger, validRideRequest()); !errors.Is(err, service.ErrNotRider) {
			t.Errorf("AddRide(passenger, expiry=%v) error = %v, want ErrNotRider", expiry, err)
		}
	}
}

func TestAddRide_MembershipGate(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideSvc := service.NewRideService(rideRepo, nil, nil)

	rider := activeRider("r1")
	rider.MembershipExpiry = time.Now().Add(-time.Hour)

	if _, err := rideSvc.AddRide(context.Background(), rider, validRideRequest()); !errors.Is(err, service.ErrMembershipExpired) {
		t.Fatalf("AddRide(expired rider) error = %v, want ErrMembershipExpired", err)
	}

	// Paying the membership fee re-opens posting in the same session.
	userRepo := NewMockUserRepository()
	userRepo.AddUser(rider)
	paySvc := service.NewPaymentService(NewMockPaymentRepository(), userRepo, nil)
	if _, err := paySvc.ProcessPayment(context.Background(), rider, service.ProcessPaymentRequest{
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
	}); err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}

	if _, err := rideSvc.AddRide(context.Background(), rider, validRideRequest()); err != nil {
		t.Errorf("AddRide(after renewal) error = %v, want nil", err)
	}
}

func TestAddRide_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(r *service.AddRideRequest)
		wantErr error
	}{
		{"missing university", func(r *service.AddRideRequest) { r.University = "" }, service.ErrMissingFields},
		{"missing start location", func(r *service.AddRideRequest) { r.StartLocation = "" }, service.ErrMissingFields},
		{"zero departure time", func(r *service.AddRideRequest) { r.DepartureTime = time.Time{} }, service.ErrMissingFields},
		{"zero seats", func(r *service.AddRideRequest) { r.AvailableSeats = 0 }, service.ErrInvalidSeatCount},
		{"too many seats", func(r *service.AddRideRequest) { r.AvailableSeats = 11 }, service.ErrInvalidSeatCount},
		{"negative fare", func(r *service.AddRideRequest) { r.Fare = -1 }, service.ErrInvalidFare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewRideService(NewMockRideRepository(), nil, nil)
			req := validRideRequest()
			tt.mutate(&req)
			if _, err := svc.AddRide(context.Background(), activeRider("r1"), req); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddRide() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("free ride allowed", func(t *testing.T) {
		svc := service.NewRideService(NewMockRideRepository(), nil, nil)
		req := validRideRequest()
		req.Fare = 0
		if _, err := svc.AddRide(context.Background(), activeRider("r1"), req); err != nil {
			t.Errorf("AddRide(fare=0) error = %v, want nil", err)
		}
	})
}

func seedSearchRides(rideRepo *MockRideRepository) {
	base := time.Now().Add(time.Hour)
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-mirpur", RiderID: "r1", University: "Dhaka University",
		StartLocation: "Mirpur 10", DepartureTime: base,
		AvailableSeats: 3, Status: domain.RideStatusActive,
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-uttara", RiderID: "r1", University: "Dhaka University",
		StartLocation: "Uttara", DepartureTime: base.Add(time.Hour),
		AvailableSeats: 2, Status: domain.RideStatusActive,
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-other-uni", RiderID: "r2", University: "BUET",
		StartLocation: "Mirpur 2", DepartureTime: base,
		AvailableSeats: 1, Status: domain.RideStatusActive,
	})
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-done", RiderID: "r1", University: "Dhaka University",
		StartLocation: "Mirpur 1", DepartureTime: base.Add(-2 * time.Hour),
		AvailableSeats: 3, Status: domain.RideStatusCompleted,
	})
}

func TestSearchRides(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	seedSearchRides(rideRepo)
	svc := service.NewRideService(rideRepo, nil, nil)

	tests := []struct {
		name    string
		filter  repository.RideFilter
		wantIDs []string
	}{
		{"no filter lists active rides", repository.RideFilter{}, []string{"ride-mirpur", "ride-other-uni", "ride-uttara"}},
		{"university exact match", repository.RideFilter{University: "Dhaka University"}, []string{"ride-mirpur", "ride-uttara"}},
		{"university is case sensitive", repository.RideFilter{University: "dhaka university"}, nil},
		{"start location substring, case insensitive", repository.RideFilter{StartLocation: "mirp"}, []string{"ride-mirpur", "ride-other-uni"}},
		{"combined filters", repository.RideFilter{University: "Dhaka University", StartLocation: "mirp"}, []string{"ride-mirpur"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.SearchRides(context.Background(), nil, tt.filter)
			if err != nil {
				t.Fatalf("SearchRides() error = %v", err)
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("SearchRides() returned %d rides, want %d", len(results), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if results[i].Ride.ID != want {
					t.Errorf("results[%d].ID = %s, want %s", i, results[i].Ride.ID, want)
				}
			}
		})
	}
}

func TestSearchRides_MembershipGate(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	seedSearchRides(rideRepo)
	svc := service.NewRideService(rideRepo, nil, nil)

	expired := &domain.User{ID: "p1", Role: domain.UserRolePassenger, MembershipExpiry: time.Now().Add(-time.Hour)}
	if _, err := svc.SearchRides(context.Background(), expired, repository.RideFilter{}); !errors.Is(err, service.ErrMembershipExpired) {
		t.Errorf("SearchRides(expired requester) error = %v, want ErrMembershipExpired", err)
	}

	// Anonymous browsing stays open.
	if _, err := svc.SearchRides(context.Background(), nil, repository.RideFilter{}); err != nil {
		t.Errorf("SearchRides(anonymous) error = %v, want nil", err)
	}
}

func TestCompleteAndDeleteRide_Ownership(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-1", RiderID: "r1", University: "Dhaka University",
		StartLocation: "Mirpur 10", DepartureTime: time.Now().Add(time.Hour),
		AvailableSeats: 3, Status: domain.RideStatusActive,
	})
	svc := service.NewRideService(rideRepo, nil, nil)

	stranger := activeRider("r2")

	if _, err := svc.CompleteRide(context.Background(), stranger, "ride-1"); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("CompleteRide(non-owner) error = %v, want ErrNotRideOwner", err)
	}
	if err := svc.DeleteRide(context.Background(), stranger, "ride-1"); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("DeleteRide(non-owner) error = %v, want ErrNotRideOwner", err)
	}
	if got := rideRepo.GetRide("ride-1"); got == nil || got.Status != domain.RideStatusActive {
		t.Errorf("ride after rejected mutations = %+v, want untouched active ride", got)
	}

	// A missing ride reports not-found, never an ownership error.
	if _, err := svc.CompleteRide(context.Background(), stranger, "ride-ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("CompleteRide(missing ride) error = %v, want ErrNotFound", err)
	}

	owner := activeRider("r1")
	ride, err := svc.CompleteRide(context.Background(), owner, "ride-1")
	if err != nil {
		t.Fatalf("CompleteRide(owner) error = %v", err)
	}
	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("ride.Status = %s, want completed", ride.Status)
	}

	if err := svc.DeleteRide(context.Background(), owner, "ride-1"); err != nil {
		t.Fatalf("DeleteRide(owner) error = %v", err)
	}
	if rideRepo.GetRide("ride-1") != nil {
		t.Error("ride still present after delete")
	}
}

func TestGetRide_CacheFlow(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.Riders["r1"] = domain.Profile{ID: "r1", Name: "Rider One", Email: "r1@du.ac.bd"}
	rideRepo.AddRide(&domain.Ride{
		ID: "ride-1", RiderID: "r1", University: "Dhaka University",
		StartLocation: "Mirpur 10", DepartureTime: time.Now().Add(time.Hour),
		AvailableSeats: 3, Status: domain.RideStatusActive,
	})
	cache := NewMockRideCache()
	svc := service.NewRideService(rideRepo, cache, nil)

	first, err := svc.GetRide(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("GetRide() error = %v", err)
	}
	if first.Rider.Name != "Rider One" {
		t.Errorf("rider name = %q, want %q", first.Rider.Name, "Rider One")
	}
	if cache.SetCallCount != 1 {
		t.Errorf("cache SetCallCount = %d, want 1", cache.SetCallCount)
	}

	// Second read is served from cache even after the row changes.
	rideRepo.GetRide("ride-1").AvailableSeats = 1
	second, err := svc.GetRide(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("GetRide() error = %v", err)
	}
	if second.Ride.AvailableSeats != 3 {
		t.Errorf("cached seats = %d, want 3", second.Ride.AvailableSeats)
	}

	// Completing invalidates, so the next read sees fresh data.
	if _, err := svc.CompleteRide(context.Background(), activeRider("r1"), "ride-1"); err != nil {
		t.Fatalf("CompleteRide() error = %v", err)
	}
	if cache.InvalidateCallCount == 0 {
		t.Error("completing a ride should invalidate its cache entry")
	}
	third, err := svc.GetRide(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("GetRide() error = %v", err)
	}
	if third.Ride.Status != domain.RideStatusCompleted {
		t.Errorf("status after invalidation = %s, want completed", third.Ride.Status)
	}
}

func TestListOwnedRides(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	base := time.Now()
	rideRepo.AddRide(&domain.Ride{ID: "later", RiderID: "r1", DepartureTime: base.Add(3 * time.Hour), Status: domain.RideStatusActive})
	rideRepo.AddRide(&domain.Ride{ID: "sooner", RiderID: "r1", DepartureTime: base.Add(time.Hour), Status: domain.RideStatusCompleted})
	rideRepo.AddRide(&domain.Ride{ID: "other", RiderID: "r2", DepartureTime: base, Status: domain.RideStatusActive})
	svc := service.NewRideService(rideRepo, nil, nil)

	rides, err := svc.ListOwnedRides(context.Background(), activeRider("r1"))
	if err != nil {
		t.Fatalf("ListOwnedRides() error = %v", err)
	}
	if len(rides) != 2 || rides[0].ID != "sooner" || rides[1].ID != "later" {
		t.Errorf("ListOwnedRides() = %v, want [sooner later]", rides)
	}

	if _, err := svc.ListOwnedRides(context.Background(), nil); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("ListOwnedRides(nil) error = %v, want ErrNotAuthenticated", err)
	}
}
