package tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	internalRedis "github.com/CaptainFAHIM/uni-ride/internal/redis"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount           int32
	UpdateMembershipCallCount int32

	// Error injection
	CreateError           error
	UpdateMembershipError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// Count returns the number of stored users.
func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) UpdateMembership(ctx context.Context, id string, active bool, expiry time.Time) error {
	atomic.AddInt32(&m.UpdateMembershipCallCount, 1)
	if m.UpdateMembershipError != nil {
		return m.UpdateMembershipError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.MembershipActive = active
	user.MembershipExpiry = expiry
	return nil
}

// GetUser returns the stored user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Riders provides the identity join for search and detail queries.
	Riders map[string]domain.Profile

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32
	DeleteCallCount       int32

	// Error injection
	CreateError error
	SearchError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides:  make(map[string]*domain.Ride),
		Riders: make(map[string]domain.Profile),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetByIDWithRider(ctx context.Context, id string) (*domain.RideWithRider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.RideWithRider{Ride: *ride, Rider: m.Riders[ride.RiderID]}, nil
}

func (m *MockRideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rides []*domain.Ride
	for _, r := range m.rides {
		if r.RiderID == riderID {
			copy := *r
			rides = append(rides, &copy)
		}
	}
	sort.Slice(rides, func(i, j int) bool {
		return rides[i].DepartureTime.Before(rides[j].DepartureTime)
	})
	return rides, nil
}

// Search mirrors the SQL semantics: active rides only, exact university
// match, case-insensitive substring on start location, departure ascending.
func (m *MockRideRepository) Search(ctx context.Context, filter repository.RideFilter) ([]*domain.RideWithRider, error) {
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*domain.RideWithRider
	for _, r := range m.rides {
		if r.Status != domain.RideStatusActive {
			continue
		}
		if filter.University != "" && r.University != filter.University {
			continue
		}
		if filter.StartLocation != "" &&
			!strings.Contains(strings.ToLower(r.StartLocation), strings.ToLower(filter.StartLocation)) {
			continue
		}
		results = append(results, &domain.RideWithRider{Ride: *r, Rider: m.Riders[r.RiderID]})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Ride.DepartureTime.Before(results[j].Ride.DepartureTime)
	})
	return results, nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, id string, status domain.RideStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	ride.Status = status
	return nil
}

func (m *MockRideRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rides, id)
	return nil
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

// ──────────────────────────────────────────────
// MOCK MESSAGE REPOSITORY
// ──────────────────────────────────────────────

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message

	// Counters for verification
	CreateCallCount   int32
	MarkReadCallCount int32

	// Error injection
	CreateError   error
	MarkReadError error
}

// NewMockMessageRepository creates a new mock message repository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

// AddMessage adds a message to the mock repository.
func (m *MockMessageRepository) AddMessage(message *domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockMessageRepository) GetThread(ctx context.Context, userA, userB, rideID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var thread []*domain.Message
	for _, msg := range m.messages {
		if msg.RideID != rideID {
			continue
		}
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			copy := *msg
			thread = append(thread, &copy)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].SentAt.Before(thread[j].SentAt)
	})
	return thread, nil
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, senderID, receiverID, rideID string) error {
	atomic.AddInt32(&m.MarkReadCallCount, 1)
	if m.MarkReadError != nil {
		return m.MarkReadError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.SenderID == senderID && msg.ReceiverID == receiverID && msg.RideID == rideID && !msg.Read {
			msg.Read = true
		}
	}
	return nil
}

func (m *MockMessageRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var messages []*domain.Message
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			copy := *msg
			messages = append(messages, &copy)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SentAt.After(messages[j].SentAt)
	})
	return messages, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.UserID == userID {
			copy := *p
			payments = append(payments, &copy)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentDate.After(payments[j].PaymentDate)
	})
	return payments, nil
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory implementation of the session store.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
	next     int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]string)}
}

func (m *MockSessionStore) Create(ctx context.Context, userID string) (string, error) {
	if m.CreateError != nil {
		return "", m.CreateError
	}
	token := fmt.Sprintf("token-%d", atomic.AddInt32(&m.next, 1))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return token, nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (string, error) {
	if m.GetError != nil {
		return "", m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token], nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDE CACHE
// ──────────────────────────────────────────────

// MockRideCache is an in-memory implementation of the ride cache.
type MockRideCache struct {
	mu    sync.RWMutex
	rides map[string]*internalRedis.CachedRide

	// Counters for verification
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockRideCache creates a new mock ride cache.
func NewMockRideCache() *MockRideCache {
	return &MockRideCache{rides: make(map[string]*internalRedis.CachedRide)}
}

func (m *MockRideCache) GetRide(ctx context.Context, rideID string) (*internalRedis.CachedRide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[rideID], nil
}

func (m *MockRideCache) SetRide(ctx context.Context, ride *internalRedis.CachedRide) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideCache) InvalidateRide(ctx context.Context, rideID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, rideID)
	return nil
}
