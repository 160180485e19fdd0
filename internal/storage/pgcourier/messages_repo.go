package pgcourier

import (
	"context"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/pkg/errors"
)

func (s *Storage) CreateMessage(ctx context.Context, m models.ContactMessage) (*models.ContactMessage, error) {
	out := m
	err := s.db.QueryRow(ctx, `
INSERT INTO contact_messages (name, email, message)
VALUES ($1,$2,$3)
RETURNING id, created_at`, m.Name, m.Email, m.Message).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert contact message")
	}
	return &out, nil
}

func (s *Storage) ListMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, name, email, message, created_at
FROM contact_messages
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select contact messages")
	}
	defer rows.Close()

	out := []*models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan contact message")
		}
		out = append(out, &m)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) DeleteMessage(ctx context.Context, id uint64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete contact message")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}
