package domain

import "time"

// UserRole distinguishes ride-offering riders from searching passengers.
type UserRole string

const (
	UserRoleRider     UserRole = "rider"
	UserRolePassenger UserRole = "passenger"
)

// User represents a registered account.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             UserRole
	University       string
	Phone            string
	ProfilePicture   string
	MembershipActive bool
	MembershipExpiry time.Time
	RegisteredAt     time.Time
}

// Profile is the subset of user identity that may be shown to other users.
type Profile struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Profile projects the public identity fields of a user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
