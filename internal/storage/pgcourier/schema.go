package pgcourier

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS tracking_records (
  id BIGSERIAL PRIMARY KEY,
  tracking_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Booking',
  location TEXT NOT NULL DEFAULT '',
  estimated_date DATE NULL,
  estimated_time TIME NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  CONSTRAINT tracking_records_tracking_id_key UNIQUE (tracking_id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_records_status ON tracking_records(status)`,
		// Older deployments stored two casings of the same status; fold them into the canonical one.
		`UPDATE tracking_records SET status = 'In process' WHERE lower(status) = 'in process' AND status <> 'In process'`,
		`UPDATE tracking_records SET status = 'Out for delivery' WHERE lower(status) = 'out for delivery' AND status <> 'Out for delivery'`,
		`ALTER TABLE tracking_records DROP CONSTRAINT IF EXISTS tracking_records_status_check`,
		`ALTER TABLE tracking_records ADD CONSTRAINT tracking_records_status_check
  CHECK (status IN ('Booking', 'In process', 'Out for delivery', 'Delivered', 'Cancelled'))`,
		`
CREATE TABLE IF NOT EXISTS contacts (
  id BIGSERIAL PRIMARY KEY,
  full_name VARCHAR(255) NOT NULL,
  contact_number VARCHAR(50) NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS packages (
  id BIGSERIAL PRIMARY KEY,
  package_name TEXT NOT NULL,
  price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
  jumpstart_admin NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (jumpstart_admin >= 0),
  jumpstart_salesman NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (jumpstart_salesman >= 0),
  duration_days INT NOT NULL CHECK (duration_days > 0),
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  CONSTRAINT packages_package_name_key UNIQUE (package_name)
)`,
		`
CREATE TABLE IF NOT EXISTS contact_messages (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  message TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS admins (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT admins_email_key UNIQUE (email)
)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
