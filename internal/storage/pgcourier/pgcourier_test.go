package pgcourier

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "admin",
			"POSTGRES_PASSWORD": "admin",
			"POSTGRES_DB":       "parceldesk_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://admin:admin@" + host + ":" + port.Port() + "/parceldesk_test?sslmode=disable"

	// the port opens a moment before postgres accepts queries
	var st *Storage
	require.Eventually(t, func() bool {
		st, err = New(dsn)
		return err == nil
	}, 30*time.Second, 500*time.Millisecond)
	t.Cleanup(st.Close)
	return st
}

func TestPGCourier_TrackingFlow(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	created, err := st.CreateTracking(ctx, "TRK-A1", models.TrackingCreateInput{Name: "Asha", Email: "asha@example.com", Phone: "+91 98"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, models.StatusBooking, created.Status)
	require.Equal(t, "", created.EstimatedDate)

	_, err = st.CreateTracking(ctx, "TRK-A1", models.TrackingCreateInput{Name: "B", Email: "b@example.com"})
	require.ErrorIs(t, err, models.ErrDuplicateTrackingID)

	// two updates, only the second survives
	_, err = st.UpdateStatus(ctx, models.StatusUpdate{
		TrackingRecordID: created.ID, Location: "Mumbai hub", EstimatedDate: "2024-05-01", EstimatedTime: "09:15", Status: models.StatusInProcess,
	})
	require.NoError(t, err)
	upd, err := st.UpdateStatus(ctx, models.StatusUpdate{
		TrackingRecordID: created.ID, Location: "Pune depot", EstimatedDate: "2024-05-02", EstimatedTime: "18:45", Status: models.StatusOutForDelivery,
	})
	require.NoError(t, err)
	require.Equal(t, "Pune depot", upd.Location)

	got, err := st.GetTrackingByCode(ctx, "TRK-A1")
	require.NoError(t, err)
	require.Equal(t, models.StatusOutForDelivery, got.Status)
	require.Equal(t, "Pune depot", got.Location)
	require.Equal(t, "2024-05-02", got.EstimatedDate)
	require.Equal(t, "18:45", got.EstimatedTime)

	_, err = st.GetTrackingByCode(ctx, "TRK-NOPE")
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = st.UpdateStatus(ctx, models.StatusUpdate{TrackingRecordID: 999999, Status: models.StatusDelivered})
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	// the CHECK constraint rejects non-canonical values written around the service
	_, err = st.UpdateStatus(ctx, models.StatusUpdate{TrackingRecordID: created.ID, Status: "In Process"})
	require.Error(t, err)
	require.False(t, apperr.Is(err, apperr.KindNotFound))

	edited, err := st.UpdateRecipient(ctx, models.RecipientUpdate{ID: created.ID, Name: "Asha K", Email: "asha.k@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Asha K", edited.Name)
	require.Equal(t, "TRK-A1", edited.TrackingID)

	_, err = st.CreateTracking(ctx, "TRK-B2", models.TrackingCreateInput{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	list, err := st.ListTrackings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	counts, err := st.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StatusCounts{Total: 2, InTransit: 1, Booking: 1}, counts)
}

func TestPGCourier_InsertContactsAtomic(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	rows := []models.ContactRow{
		{FullName: "A", ContactNumber: "1", Address: "x"},
		{FullName: "B", ContactNumber: "2"},
		{FullName: "C"},
		{ContactNumber: "4"},
		{FullName: "E", ContactNumber: "5", Address: "y"},
	}

	// contact_number is VARCHAR(50): one oversized value fails the whole statement
	bad := append([]models.ContactRow{}, rows...)
	bad[4].ContactNumber = strings.Repeat("9", 60)
	_, err := st.InsertContacts(ctx, bad)
	require.Error(t, err)

	list, err := st.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 0)

	n, err := st.InsertContacts(ctx, rows)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	list, err = st.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
}

func TestPGCourier_PackagesMessagesAdmins(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	p, err := st.CreatePackage(ctx, models.PackageInput{PackageName: "Gold", Price: 999.5, JumpstartAdmin: 10, JumpstartSalesman: 5, DurationDays: 90})
	require.NoError(t, err)
	require.Equal(t, "Quarterly", p.DurationLabel)
	require.InDelta(t, 999.5, p.Price, 0.001)

	_, err = st.CreatePackage(ctx, models.PackageInput{PackageName: "Gold", Price: 1, DurationDays: 30})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	p, err = st.UpdatePackage(ctx, p.ID, models.PackageInput{PackageName: "Gold", Price: 1200, DurationDays: 47})
	require.NoError(t, err)
	require.Equal(t, "47 days", p.DurationLabel)

	got, err := st.GetPackage(ctx, p.ID)
	require.NoError(t, err)
	require.InDelta(t, 1200, got.Price, 0.001)

	require.NoError(t, st.DeletePackage(ctx, p.ID))
	require.True(t, apperr.Is(st.DeletePackage(ctx, p.ID), apperr.KindNotFound))

	m, err := st.CreateMessage(ctx, models.ContactMessage{Name: "N", Email: "n@example.com", Message: "where is my parcel"})
	require.NoError(t, err)
	msgs, err := st.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NoError(t, st.DeleteMessage(ctx, m.ID))
	require.True(t, apperr.Is(st.DeleteMessage(ctx, m.ID), apperr.KindNotFound))

	created, err := st.CreateAdmin(ctx, models.Admin{Name: "Root", Email: "root@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.True(t, created)
	created, err = st.CreateAdmin(ctx, models.Admin{Name: "Root", Email: "root@example.com", PasswordHash: "h2"})
	require.NoError(t, err)
	require.False(t, created)

	a, err := st.GetAdminByEmail(ctx, "ROOT@example.com")
	require.NoError(t, err)
	require.Equal(t, "h", a.PasswordHash)
}
