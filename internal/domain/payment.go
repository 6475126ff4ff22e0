package domain

import "time"

// Payment is an immutable record of one membership renewal.
type Payment struct {
	ID              string
	UserID          string
	Amount          float64
	MembershipType  UserRole
	PaymentDate     time.Time
	MembershipStart time.Time
	MembershipEnd   time.Time
	TransactionID   string
}
