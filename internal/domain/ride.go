package domain

import "time"

// RideStatus represents the current status of a ride offer.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride represents a commute offer posted by a rider.
type Ride struct {
	ID             string
	RiderID        string
	University     string
	StartLocation  string
	DepartureTime  time.Time
	AvailableSeats int
	Fare           float64
	Status         RideStatus
	Description    string
	CreatedAt      time.Time
}

// RideWithRider pairs a ride with its owner's public identity, as returned
// by search and detail queries.
type RideWithRider struct {
	Ride  Ride
	Rider Profile
}
