package pgcourier

import (
	"context"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const trackingColumns = `
  id, tracking_id, name, email, phone, status, location,
  COALESCE(estimated_date::text, ''),
  COALESCE(to_char(estimated_time, 'HH24:MI'), ''),
  created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracking(row rowScanner) (*models.TrackingRecord, error) {
	var t models.TrackingRecord
	var status string
	if err := row.Scan(
		&t.ID, &t.TrackingID, &t.Name, &t.Email, &t.Phone, &status, &t.Location,
		&t.EstimatedDate, &t.EstimatedTime,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = models.Status(status)
	return &t, nil
}

func (s *Storage) CreateTracking(ctx context.Context, trackingID string, in models.TrackingCreateInput) (*models.TrackingRecord, error) {
	now := time.Now().UTC()
	row := s.db.QueryRow(ctx, `
INSERT INTO tracking_records (tracking_id, name, email, phone, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
RETURNING`+trackingColumns,
		trackingID, in.Name, in.Email, in.Phone, string(models.StatusBooking), now)

	t, err := scanTracking(row)
	if err != nil {
		if isUniqueViolation(err, "tracking_records_tracking_id_key") {
			return nil, models.ErrDuplicateTrackingID
		}
		return nil, errors.Wrap(err, "insert tracking")
	}
	return t, nil
}

func (s *Storage) ListTrackings(ctx context.Context) ([]*models.TrackingRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT`+trackingColumns+`
FROM tracking_records
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select trackings")
	}
	defer rows.Close()

	out := []*models.TrackingRecord{}
	for rows.Next() {
		t, err := scanTracking(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan tracking")
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetTrackingByCode(ctx context.Context, trackingID string) (*models.TrackingRecord, error) {
	row := s.db.QueryRow(ctx, `SELECT`+trackingColumns+`
FROM tracking_records
WHERE tracking_id = $1`, trackingID)

	t, err := scanTracking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("tracking id not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select tracking by code")
	}
	return t, nil
}

func (s *Storage) UpdateRecipient(ctx context.Context, upd models.RecipientUpdate) (*models.TrackingRecord, error) {
	row := s.db.QueryRow(ctx, `
UPDATE tracking_records
SET name = $2, email = $3, phone = $4, updated_at = now()
WHERE id = $1
RETURNING`+trackingColumns,
		upd.ID, upd.Name, upd.Email, upd.Phone)

	t, err := scanTracking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("tracking record not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "update recipient")
	}
	return t, nil
}

// UpdateStatus overwrites the last-known state of one record. Nothing of the
// previous state is kept.
func (s *Storage) UpdateStatus(ctx context.Context, upd models.StatusUpdate) (*models.TrackingRecord, error) {
	row := s.db.QueryRow(ctx, `
UPDATE tracking_records
SET
  location = $2,
  estimated_date = NULLIF($3::text, '')::date,
  estimated_time = NULLIF($4::text, '')::time,
  status = $5,
  updated_at = now()
WHERE id = $1
RETURNING`+trackingColumns,
		upd.TrackingRecordID, upd.Location, upd.EstimatedDate, upd.EstimatedTime, string(upd.Status))

	t, err := scanTracking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("tracking record not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "update status")
	}
	return t, nil
}

func (s *Storage) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	var out models.StatusCounts

	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM tracking_records GROUP BY status`)
	if err != nil {
		return out, errors.Wrap(err, "count by status")
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return out, errors.Wrap(err, "scan status count")
		}
		out.Add(models.Status(status), n)
	}
	if rows.Err() != nil {
		return out, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
