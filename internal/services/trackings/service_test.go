package trackings

import (
	"context"
	"testing"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	codes     []string
	createErr []error

	recipient models.RecipientUpdate
	counts    models.StatusCounts
}

func (f *fakeRepo) CreateTracking(ctx context.Context, trackingID string, in models.TrackingCreateInput) (*models.TrackingRecord, error) {
	f.codes = append(f.codes, trackingID)
	if len(f.createErr) > 0 {
		err := f.createErr[0]
		f.createErr = f.createErr[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.TrackingRecord{ID: 1, TrackingID: trackingID, Name: in.Name, Email: in.Email, Phone: in.Phone, Status: models.StatusBooking}, nil
}

func (f *fakeRepo) ListTrackings(ctx context.Context) ([]*models.TrackingRecord, error) {
	return []*models.TrackingRecord{}, nil
}

func (f *fakeRepo) GetTrackingByCode(ctx context.Context, trackingID string) (*models.TrackingRecord, error) {
	return nil, apperr.NotFound("tracking id not found")
}

func (f *fakeRepo) UpdateRecipient(ctx context.Context, upd models.RecipientUpdate) (*models.TrackingRecord, error) {
	f.recipient = upd
	return &models.TrackingRecord{ID: upd.ID, TrackingID: "TRK-X", Name: upd.Name, Email: upd.Email}, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, upd models.StatusUpdate) (*models.TrackingRecord, error) {
	return nil, apperr.NotFound("tracking record not found")
}

func (f *fakeRepo) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	return f.counts, nil
}

func TestService_CreateTracking_StartsAtBooking(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, nil, &seqCodes{codes: []string{"TRK-1"}}, Config{})

	out, err := svc.CreateTracking(context.Background(), models.TrackingCreateInput{Name: " Asha ", Email: "asha@example.com"})
	require.NoError(t, err)
	require.Equal(t, models.StatusBooking, out.Status)
	require.Equal(t, "TRK-1", out.TrackingID)
	require.Equal(t, "Asha", out.Name)
}

func TestService_CreateTracking_RetriesOnCollision(t *testing.T) {
	repo := &fakeRepo{createErr: []error{models.ErrDuplicateTrackingID, nil}}
	svc := New(repo, nil, nil, &seqCodes{codes: []string{"TRK-1", "TRK-2"}}, Config{})

	out, err := svc.CreateTracking(context.Background(), models.TrackingCreateInput{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	require.Equal(t, "TRK-2", out.TrackingID)
	require.Equal(t, []string{"TRK-1", "TRK-2"}, repo.codes)
}

func TestService_CreateTracking_GivesUpAfterAttempts(t *testing.T) {
	dup := models.ErrDuplicateTrackingID
	repo := &fakeRepo{createErr: []error{dup, dup, dup}}
	svc := New(repo, nil, nil, &seqCodes{codes: []string{"TRK-1"}}, Config{})

	_, err := svc.CreateTracking(context.Background(), models.TrackingCreateInput{Name: "A", Email: "a@example.com"})
	require.Error(t, err)
	require.Len(t, repo.codes, createAttempts)
}

func TestService_CreateTracking_Validate(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, nil, &seqCodes{codes: []string{"TRK-1"}}, Config{})

	for _, in := range []models.TrackingCreateInput{
		{Name: "", Email: "a@example.com"},
		{Name: "A", Email: ""},
		{Name: "A", Email: "not-an-email"},
	} {
		_, err := svc.CreateTracking(context.Background(), in)
		require.True(t, apperr.Is(err, apperr.KindValidation), in)
	}
	require.Empty(t, repo.codes)
}

func TestService_UpdateRecipient(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, nil, nil, Config{})

	_, err := svc.UpdateRecipient(context.Background(), models.RecipientUpdate{Name: "A", Email: "a@example.com"})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	out, err := svc.UpdateRecipient(context.Background(), models.RecipientUpdate{ID: 3, Name: "B ", Email: "b@example.com", Phone: " 555"})
	require.NoError(t, err)
	require.Equal(t, "B", out.Name)
	require.Equal(t, "555", repo.recipient.Phone)
}

func TestService_UpdateStatus_UnknownRecordPassesNotFound(t *testing.T) {
	svc := New(&fakeRepo{}, nil, nil, nil, Config{})

	_, err := svc.UpdateStatus(context.Background(), models.StatusUpdate{TrackingRecordID: 42, Status: models.StatusCancelled})
	require.True(t, apperr.Is(errors.Wrap(err, "handler"), apperr.KindNotFound))
}

func TestService_DashboardCounts(t *testing.T) {
	want := models.StatusCounts{Total: 3, Delivered: 1, InTransit: 1, Booking: 1}
	svc := New(&fakeRepo{counts: want}, nil, nil, nil, Config{})

	got, err := svc.DashboardCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestValidClock(t *testing.T) {
	require.True(t, validClock("09:30"))
	require.True(t, validClock("23:59:59"))
	require.False(t, validClock("24:00"))
	require.False(t, validClock("9.30"))
}
