package inbox

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/BearBump/ParcelDesk/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
)

type Repository interface {
	CreateMessage(ctx context.Context, m models.ContactMessage) (*models.ContactMessage, error)
	ListMessages(ctx context.Context) ([]*models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id uint64) error
}

// Submission is what the public contact-us form posts.
type Submission struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type Service struct {
	repo     Repository
	validate *validatorv10.Validate
}

func New(repo Repository) *Service {
	return &Service{repo: repo, validate: validation.New()}
}

func (s *Service) Submit(ctx context.Context, in Submission) (*models.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Check(s.validate, in); err != nil {
		return nil, err
	}

	m, err := s.repo.CreateMessage(ctx, models.ContactMessage{Name: in.Name, Email: in.Email, Message: in.Message})
	if err != nil {
		return nil, err
	}
	slog.Info("contact message received", "id", m.ID)
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.repo.ListMessages(ctx)
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if id == 0 {
		return apperr.NotFound("message not found")
	}
	return s.repo.DeleteMessage(ctx, id)
}
