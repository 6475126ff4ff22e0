package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const uniqueViolation = "23505"

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, university, phone, profile_picture, membership_active, membership_expiry, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.University,
		user.Phone,
		user.ProfilePicture,
		user.MembershipActive,
		user.MembershipExpiry,
		user.RegisteredAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := userSelectColumns + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userSelectColumns + ` WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// UpdateMembership overwrites the membership window of a user.
func (r *UserRepository) UpdateMembership(ctx context.Context, id string, active bool, expiry time.Time) error {
	query := `UPDATE users SET membership_active = $1, membership_expiry = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, active, expiry, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

const userSelectColumns = `
	SELECT id, name, email, password_hash, role, university, phone, profile_picture, membership_active, membership_expiry, registered_at
	FROM users`

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.University,
		&user.Phone,
		&user.ProfilePicture,
		&user.MembershipActive,
		&user.MembershipExpiry,
		&user.RegisteredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
