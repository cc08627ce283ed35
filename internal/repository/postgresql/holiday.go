package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/holiday"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

// IsHoliday implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) IsHoliday(ctx context.Context, holidayListID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE holiday_list_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, holidayListID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}

// ListDatesBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListDatesBetween(ctx context.Context, holidayListID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date
		FROM holidays
		WHERE holiday_list_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, holidayListID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan holiday date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday dates: %w", err)
	}

	return dates, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}
