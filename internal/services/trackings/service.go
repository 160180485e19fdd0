package trackings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/broker/messages"
	"github.com/BearBump/ParcelDesk/internal/cache"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/BearBump/ParcelDesk/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Repository interface {
	CreateTracking(ctx context.Context, trackingID string, in models.TrackingCreateInput) (*models.TrackingRecord, error)
	ListTrackings(ctx context.Context) ([]*models.TrackingRecord, error)
	GetTrackingByCode(ctx context.Context, trackingID string) (*models.TrackingRecord, error)
	UpdateRecipient(ctx context.Context, upd models.RecipientUpdate) (*models.TrackingRecord, error)
	UpdateStatus(ctx context.Context, upd models.StatusUpdate) (*models.TrackingRecord, error)
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type CodeGenerator interface {
	NewCode() string
}

type Config struct {
	SnapshotTTL time.Duration
	StatusTopic string
}

const createAttempts = 3

type Service struct {
	repo     Repository
	cache    cache.BytesCache
	pub      Publisher
	codes    CodeGenerator
	cfg      Config
	validate *validatorv10.Validate
}

// New wires the service. cache and pub may be nil.
func New(repo Repository, c cache.BytesCache, pub Publisher, codes CodeGenerator, cfg Config) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		pub:      pub,
		codes:    codes,
		cfg:      cfg,
		validate: validation.New(),
	}
}

func (s *Service) CreateTracking(ctx context.Context, in models.TrackingCreateInput) (*models.TrackingRecord, error) {
	in = models.TrackingCreateInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	if err := s.checkRecipient(in.Name, in.Email); err != nil {
		return nil, err
	}

	for i := 0; i < createAttempts; i++ {
		t, err := s.repo.CreateTracking(ctx, s.codes.NewCode(), in)
		if errors.Is(err, models.ErrDuplicateTrackingID) {
			slog.Warn("tracking code collision, retrying", "attempt", i+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, errors.New("could not allocate a unique tracking id")
}

func (s *Service) ListTrackings(ctx context.Context) ([]*models.TrackingRecord, error) {
	return s.repo.ListTrackings(ctx)
}

func (s *Service) UpdateRecipient(ctx context.Context, upd models.RecipientUpdate) (*models.TrackingRecord, error) {
	if upd.ID == 0 {
		return nil, apperr.Validation("id is required")
	}
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	upd.Phone = strings.TrimSpace(upd.Phone)
	if err := s.checkRecipient(upd.Name, upd.Email); err != nil {
		return nil, err
	}

	t, err := s.repo.UpdateRecipient(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(ctx, t)
	return t, nil
}

// UpdateStatus overwrites location, estimate and status of one record.
// The last successful write wins; earlier values are not kept anywhere.
func (s *Service) UpdateStatus(ctx context.Context, upd models.StatusUpdate) (*models.TrackingRecord, error) {
	if upd.TrackingRecordID == 0 {
		return nil, apperr.Validation("tracking_record_id is required")
	}
	st, ok := models.ParseStatus(string(upd.Status))
	if !ok {
		return nil, apperr.Validationf("invalid status %q", upd.Status)
	}
	upd.Status = st
	upd.Location = strings.TrimSpace(upd.Location)
	upd.EstimatedDate = strings.TrimSpace(upd.EstimatedDate)
	upd.EstimatedTime = strings.TrimSpace(upd.EstimatedTime)

	if upd.EstimatedDate != "" {
		if _, err := time.Parse(time.DateOnly, upd.EstimatedDate); err != nil {
			return nil, apperr.Validation("estimated_date must be YYYY-MM-DD")
		}
	}
	if upd.EstimatedTime != "" && !validClock(upd.EstimatedTime) {
		return nil, apperr.Validation("estimated_time must be HH:MM")
	}

	t, err := s.repo.UpdateStatus(ctx, upd)
	if err != nil {
		return nil, err
	}

	s.storeSnapshot(ctx, t)
	s.publishStatusChanged(ctx, t)
	return t, nil
}

// Lookup is the public read. It never exposes e-mail or phone.
func (s *Service) Lookup(ctx context.Context, trackingID string) (*models.TrackingSnapshot, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, apperr.Validation("tracking id is required")
	}

	if s.cacheEnabled() {
		b, ok, err := s.cache.Get(ctx, snapshotKey(trackingID))
		if err == nil && ok {
			var snap models.TrackingSnapshot
			if json.Unmarshal(b, &snap) == nil {
				return &snap, nil
			}
			s.dropSnapshot(ctx, trackingID)
		}
	}

	t, err := s.repo.GetTrackingByCode(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(ctx, t)

	snap := t.Snapshot()
	return &snap, nil
}

func (s *Service) DashboardCounts(ctx context.Context) (models.StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) checkRecipient(name, email string) error {
	if name == "" {
		return apperr.Validation("name is required")
	}
	if email == "" {
		return apperr.Validation("email is required")
	}
	if s.validate.Var(email, "email") != nil {
		return apperr.Validation("email is invalid")
	}
	return nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cfg.SnapshotTTL > 0
}

// storeSnapshot is best effort: a failed cache write only costs a DB read later.
func (s *Service) storeSnapshot(ctx context.Context, t *models.TrackingRecord) {
	if !s.cacheEnabled() {
		return
	}
	b, err := json.Marshal(t.Snapshot())
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, snapshotKey(t.TrackingID), b, s.cfg.SnapshotTTL); err != nil {
		slog.Warn("snapshot cache set failed", "tracking_id", t.TrackingID, "error", err.Error())
		// The previous snapshot must not outlive the write it no longer matches.
		s.dropSnapshot(ctx, t.TrackingID)
	}
}

func (s *Service) dropSnapshot(ctx context.Context, trackingID string) {
	if err := s.cache.Delete(ctx, snapshotKey(trackingID)); err != nil {
		slog.Warn("snapshot cache delete failed", "tracking_id", trackingID, "error", err.Error())
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, t *models.TrackingRecord) {
	if s.pub == nil || s.cfg.StatusTopic == "" {
		return
	}
	b, err := json.Marshal(messages.NewTrackingStatusChanged(t))
	if err != nil {
		return
	}
	if err := s.pub.Publish(ctx, s.cfg.StatusTopic, []byte(t.TrackingID), b); err != nil {
		slog.Warn("publish status changed failed", "tracking_id", t.TrackingID, "error", err.Error())
	}
}

func validClock(v string) bool {
	for _, layout := range []string{"15:04", time.TimeOnly} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func snapshotKey(trackingID string) string {
	return fmt.Sprintf("tracking:%s:snapshot", trackingID)
}
