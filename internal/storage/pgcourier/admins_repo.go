package pgcourier

import (
	"context"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRow(ctx, `
SELECT id, name, email, password_hash, created_at
FROM admins
WHERE lower(email) = lower($1)`, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("admin not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select admin")
	}
	return &a, nil
}

// CreateAdmin inserts the admin unless the e-mail is taken. created reports
// whether a new row was written.
func (s *Storage) CreateAdmin(ctx context.Context, a models.Admin) (created bool, err error) {
	tag, err := s.db.Exec(ctx, `
INSERT INTO admins (name, email, password_hash)
VALUES ($1,$2,$3)
ON CONFLICT (email) DO NOTHING`, a.Name, a.Email, a.PasswordHash)
	if err != nil {
		return false, errors.Wrap(err, "insert admin")
	}
	return tag.RowsAffected() == 1, nil
}
