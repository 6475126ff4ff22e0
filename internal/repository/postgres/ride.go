package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, rider_id, university, start_location, departure_time, available_seats, fare, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RiderID,
		ride.University,
		ride.StartLocation,
		ride.DepartureTime,
		ride.AvailableSeats,
		ride.Fare,
		ride.Status,
		ride.Description,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `
		SELECT id, rider_id, university, start_location, departure_time, available_seats, fare, status, description, created_at
		FROM rides WHERE id = $1
	`

	var ride domain.Ride
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&ride.ID,
		&ride.RiderID,
		&ride.University,
		&ride.StartLocation,
		&ride.DepartureTime,
		&ride.AvailableSeats,
		&ride.Fare,
		&ride.Status,
		&ride.Description,
		&ride.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &ride, nil
}

// GetByIDWithRider retrieves a ride joined with its owner's identity.
func (r *RideRepository) GetByIDWithRider(ctx context.Context, id string) (*domain.RideWithRider, error) {
	query := rideWithRiderColumns + ` WHERE r.id = $1`

	row := r.q.QueryRowContext(ctx, query, id)

	var result domain.RideWithRider
	if err := scanRideWithRider(row.Scan, &result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListByRider retrieves all rides owned by a rider, departure time ascending.
func (r *RideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	query := `
		SELECT id, rider_id, university, start_location, departure_time, available_seats, fare, status, description, created_at
		FROM rides WHERE rider_id = $1 ORDER BY departure_time ASC
	`

	rows, err := r.q.QueryContext(ctx, query, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		var ride domain.Ride
		if err := rows.Scan(
			&ride.ID,
			&ride.RiderID,
			&ride.University,
			&ride.StartLocation,
			&ride.DepartureTime,
			&ride.AvailableSeats,
			&ride.Fare,
			&ride.Status,
			&ride.Description,
			&ride.CreatedAt,
		); err != nil {
			return nil, err
		}
		rides = append(rides, &ride)
	}
	return rides, rows.Err()
}

// Search retrieves active rides matching the filter, joined with rider identity.
// University matches exactly; start location matches a case-insensitive substring.
func (r *RideRepository) Search(ctx context.Context, filter repository.RideFilter) ([]*domain.RideWithRider, error) {
	query := rideWithRiderColumns + ` WHERE r.status = $1`
	args := []any{domain.RideStatusActive}

	if filter.University != "" {
		args = append(args, filter.University)
		query += ` AND r.university = $2`
	}
	if filter.StartLocation != "" {
		args = append(args, "%"+filter.StartLocation+"%")
		if filter.University != "" {
			query += ` AND r.start_location ILIKE $3`
		} else {
			query += ` AND r.start_location ILIKE $2`
		}
	}

	query += ` ORDER BY r.departure_time ASC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.RideWithRider
	for rows.Next() {
		var result domain.RideWithRider
		if err := scanRideWithRider(rows.Scan, &result); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// UpdateStatus updates the status of a ride.
func (r *RideRepository) UpdateStatus(ctx context.Context, id string, status domain.RideStatus) error {
	query := `UPDATE rides SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// Delete removes a ride.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rides WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
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

const rideWithRiderColumns = `
	SELECT r.id, r.rider_id, r.university, r.start_location, r.departure_time, r.available_seats, r.fare, r.status, r.description, r.created_at,
	       u.id, u.name, u.email, u.phone
	FROM rides r
	JOIN users u ON u.id = r.rider_id`

func scanRideWithRider(scan func(dest ...any) error, result *domain.RideWithRider) error {
	return scan(
		&result.Ride.ID,
		&result.Ride.RiderID,
		&result.Ride.University,
		&result.Ride.StartLocation,
		&result.Ride.DepartureTime,
		&result.Ride.AvailableSeats,
		&result.Ride.Fare,
		&result.Ride.Status,
		&result.Ride.Description,
		&result.Ride.CreatedAt,
		&result.Rider.ID,
		&result.Rider.Name,
		&result.Rider.Email,
		&result.Rider.Phone,
	)
}
