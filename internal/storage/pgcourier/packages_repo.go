package pgcourier

import (
	"context"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const packageColumns = `
  id, package_name, price, jumpstart_admin, jumpstart_salesman, duration_days, created_at, updated_at`

func scanPackage(row rowScanner) (*models.Package, error) {
	var p models.Package
	if err := row.Scan(
		&p.ID, &p.PackageName, &p.Price, &p.JumpstartAdmin, &p.JumpstartSalesman,
		&p.DurationDays, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.DurationLabel = models.DurationLabel(p.DurationDays)
	return &p, nil
}

func (s *Storage) ListPackages(ctx context.Context) ([]*models.Package, error) {
	rows, err := s.db.Query(ctx, `SELECT`+packageColumns+` FROM packages ORDER BY duration_days, id`)
	if err != nil {
		return nil, errors.Wrap(err, "select packages")
	}
	defer rows.Close()

	out := []*models.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan package")
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetPackage(ctx context.Context, id uint64) (*models.Package, error) {
	p, err := scanPackage(s.db.QueryRow(ctx, `SELECT`+packageColumns+` FROM packages WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("package not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "select package")
	}
	return p, nil
}

func (s *Storage) CreatePackage(ctx context.Context, in models.PackageInput) (*models.Package, error) {
	now := time.Now().UTC()
	p, err := scanPackage(s.db.QueryRow(ctx, `
INSERT INTO packages (package_name, price, jumpstart_admin, jumpstart_salesman, duration_days, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
RETURNING`+packageColumns,
		in.PackageName, in.Price, in.JumpstartAdmin, in.JumpstartSalesman, in.DurationDays, now))
	if isUniqueViolation(err, "packages_package_name_key") {
		return nil, apperr.Validation("package_name already exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "insert package")
	}
	return p, nil
}

func (s *Storage) UpdatePackage(ctx context.Context, id uint64, in models.PackageInput) (*models.Package, error) {
	p, err := scanPackage(s.db.QueryRow(ctx, `
UPDATE packages
SET package_name = $2, price = $3, jumpstart_admin = $4, jumpstart_salesman = $5,
    duration_days = $6, updated_at = now()
WHERE id = $1
RETURNING`+packageColumns,
		id, in.PackageName, in.Price, in.JumpstartAdmin, in.JumpstartSalesman, in.DurationDays))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("package not found")
	}
	if isUniqueViolation(err, "packages_package_name_key") {
		return nil, apperr.Validation("package_name already exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "update package")
	}
	return p, nil
}

func (s *Storage) DeletePackage(ctx context.Context, id uint64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete package")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("package not found")
	}
	return nil
}
