package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// Membership pricing and duration. Amounts are fixed per role, not per call.
const (
	RiderMembershipFee     = 70
	PassengerMembershipFee = 50
	MembershipPeriod       = 30 * 24 * time.Hour
)

// PaymentService handles membership renewals and the payment ledger.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, userRepo repository.UserRepository, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ProcessPaymentRequest contains the card fields of the payment form.
// Only presence is checked; there is no gateway behind this.
type ProcessPaymentRequest struct {
	CardNumber string
	ExpiryDate string
	CVV        string
}

// ProcessPayment charges the role-priced membership fee and overwrites the
// user's membership window with [now, now+30d). A renewal before expiry does
// not extend the remaining balance; the new window replaces it.
func (s *PaymentService) ProcessPayment(ctx context.Context, user *domain.User, req ProcessPaymentRequest) (*domain.Payment, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	if req.CardNumber == "" || req.ExpiryDate == "" || req.CVV == "" {
		return nil, ErrMissingCardFields
	}

	amount := float64(PassengerMembershipFee)
	if user.Role == domain.UserRoleRider {
		amount = RiderMembershipFee
	}

	now := time.Now()
	membershipEnd := now.Add(MembershipPeriod)

	payment := &domain.Payment{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		Amount:          amount,
		MembershipType:  user.Role,
		PaymentDate:     now,
		MembershipStart: now,
		MembershipEnd:   membershipEnd,
		TransactionID:   fmt.Sprintf("TR-%d-%d", now.UnixMilli(), rand.Intn(1000)),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateMembership(ctx, user.ID, true, membershipEnd); err != nil {
		// The payment row exists but the window was not moved; surface the
		// failure so the caller retries rather than silently losing the renewal.
		s.logger.Error("membership update failed after payment",
			zap.String("user_id", user.ID),
			zap.String("transaction_id", payment.TransactionID),
			zap.Error(err))
		return nil, err
	}

	user.MembershipActive = true
	user.MembershipExpiry = membershipEnd

	return payment, nil
}

// GetPaymentHistory returns all payments for the user, newest first.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, user *domain.User) ([]*domain.Payment, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	return s.paymentRepo.ListByUser(ctx, user.ID)
}
