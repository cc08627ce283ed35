package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type shiftLocationRepositoryImpl struct {
	db *database.DB
}

// Create implements shift.ShiftLocationRepository.
func (r *shiftLocationRepositoryImpl) Create(ctx context.Context, location shift.ShiftLocation) (shift.ShiftLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_locations (id, company_id, name, latitude, longitude, checkin_radius_meters)
		VALUES (uuidv7(), $1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		location.CompanyID,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.CheckinRadiusMeters,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)

	if err != nil {
		return shift.ShiftLocation{}, fmt.Errorf("failed to create shift location: %w", err)
	}

	return location, nil
}

// GetByID implements shift.ShiftLocationRepository.
func (r *shiftLocationRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, latitude, longitude, checkin_radius_meters, created_at, updated_at
		FROM shift_locations
		WHERE id = $1 AND company_id = $2
	`

	var l shift.ShiftLocation
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&l.ID, &l.CompanyID, &l.Name, &l.Latitude, &l.Longitude,
		&l.CheckinRadiusMeters, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftLocation{}, shift.ErrLocationNotFound
		}
		return shift.ShiftLocation{}, fmt.Errorf("failed to get shift location: %w", err)
	}
	return l, nil
}

// List implements shift.ShiftLocationRepository.
func (r *shiftLocationRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.ShiftLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, latitude, longitude, checkin_radius_meters, created_at, updated_at
		FROM shift_locations
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift locations: %w", err)
	}
	defer rows.Close()

	var locations []shift.ShiftLocation
	for rows.Next() {
		var l shift.ShiftLocation
		err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Name, &l.Latitude, &l.Longitude,
			&l.CheckinRadiusMeters, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift locations: %w", err)
	}

	return locations, nil
}

// Update implements shift.ShiftLocationRepository.
func (r *shiftLocationRepositoryImpl) Update(ctx context.Context, location shift.ShiftLocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_locations SET
			name = $1, latitude = $2, longitude = $3, checkin_radius_meters = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.CheckinRadiusMeters,
		location.ID,
		location.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrLocationNotFound
	}
	return nil
}

// Delete implements shift.ShiftLocationRepository.
func (r *shiftLocationRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM shift_locations WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrLocationNotFound
	}
	return nil
}

func NewShiftLocationRepository(db *database.DB) shift.ShiftLocationRepository {
	return &shiftLocationRepositoryImpl{db: db}
}
