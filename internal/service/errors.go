package service

import "errors"

var (
	// ErrMissingFields is returned when a required field is absent.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidRole is returned when a role is neither rider nor passenger.
	ErrInvalidRole = errors.New("role must be rider or passenger")

	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on any login failure. Unknown email
	// and wrong password deliberately collapse to the same error.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated is returned when an operation requires a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotRider is returned when a passenger tries to post a ride.
	ErrNotRider = errors.New("only riders can add rides")

	// ErrMembershipExpired is returned when the membership window has lapsed.
	ErrMembershipExpired = errors.New("membership expired, renewal required")

	// ErrNotRideOwner is returned when an actor mutates a ride they do not own.
	ErrNotRideOwner = errors.New("not authorized to modify this ride")

	// ErrInvalidSeatCount is returned when the seat count is out of range.
	ErrInvalidSeatCount = errors.New("available seats must be between 1 and 10")

	// ErrInvalidFare is returned when the fare is negative.
	ErrInvalidFare = errors.New("fare must be a non-negative number")

	// ErrMissingCardFields is returned when a card field is absent.
	ErrMissingCardFields = errors.New("all payment fields are required")
)
