package pgcourier

import (
	"context"
	"fmt"
	"strings"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// maxContactsPerInsert is the pgx bind parameter limit divided by the
// three columns of one row.
const maxContactsPerInsert = 65535 / 3

// InsertContacts writes every row with one multi-row INSERT inside one
// transaction. Either all rows are committed or none are.
func (s *Storage) InsertContacts(ctx context.Context, rows []models.ContactRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(rows) > maxContactsPerInsert {
		return 0, apperr.Validationf("too many rows (max %d)", maxContactsPerInsert)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q, args := buildContactsInsert(rows)
	tag, err := tx.Exec(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "insert contacts")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, errors.Wrap(err, "commit tx")
	}
	return int(tag.RowsAffected()), nil
}

func buildContactsInsert(rows []models.ContactRow) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO contacts (full_name, contact_number, address) VALUES ")

	args := make([]any, 0, len(rows)*3)
	for i, r := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		n := i * 3
		fmt.Fprintf(&b, "($%d,$%d,$%d)", n+1, n+2, n+3)
		args = append(args, r.FullName, r.ContactNumber, r.Address)
	}
	return b.String(), args
}

func (s *Storage) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, full_name, contact_number, address, created_at
FROM contacts
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select contacts")
	}
	defer rows.Close()

	out := []*models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.ContactNumber, &c.Address, &c.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan contact")
		}
		out = append(out, &c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
