package auth

import (
	"context"
	"testing"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/cache/rediscache"
	"github.com/BearBump/ParcelDesk/internal/models"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authmocks "github.com/BearBump/ParcelDesk/internal/services/auth/mocks"
)

var testSecret = []byte("test-secret")

func adminWithPassword(t *testing.T, pw string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Admin{ID: 7, Name: "Ops", Email: "ops@example.com", PasswordHash: string(hash)}
}

func newTestService(t *testing.T, repo Repository, rl RateLimiter) *Service {
	t.Helper()
	svc, err := New(repo, rl, Config{Secret: testSecret, TokenTTL: time.Hour, LoginPerMinute: 3})
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(&authmocks.MockRepository{}, nil, Config{})
	require.Error(t, err)
}

func TestLogin_IssuesTokenThatAuthenticates(t *testing.T) {
	repo := &authmocks.MockRepository{}
	repo.On("GetAdminByEmail", mock.Anything, "ops@example.com").Return(adminWithPassword(t, "s3cret"), nil).Once()
	svc := newTestService(t, repo, nil)

	res, err := svc.Login(context.Background(), " ops@example.com ", "s3cret", "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, uint64(7), res.Admin.ID)

	sess, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(7), sess.AdminID)
	require.Equal(t, "ops@example.com", sess.Email)
	require.NotEmpty(t, sess.TokenID)
	require.WithinDuration(t, res.ExpiresAt, sess.ExpiresAt, time.Second)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := &authmocks.MockRepository{}
	repo.On("GetAdminByEmail", mock.Anything, "ops@example.com").Return(adminWithPassword(t, "s3cret"), nil).Once()
	repo.On("GetAdminByEmail", mock.Anything, "ghost@example.com").Return(nil, apperr.NotFound("admin not found")).Once()
	svc := newTestService(t, repo, nil)

	_, err := svc.Login(context.Background(), "ops@example.com", "wrong", "ip")
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Login(context.Background(), "ghost@example.com", "x", "ip")
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))
	require.Equal(t, "invalid email or password", err.Error())

	_, err = svc.Login(context.Background(), "", "", "ip")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestLogin_Throttled(t *testing.T) {
	mr := miniredis.RunT(t)
	rl := rediscache.NewRateLimiter(mr.Addr())

	repo := &authmocks.MockRepository{}
	repo.On("GetAdminByEmail", mock.Anything, mock.Anything).Return(adminWithPassword(t, "s3cret"), nil)
	svc := newTestService(t, repo, rl)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "ops@example.com", "wrong", "1.2.3.4")
		require.True(t, apperr.Is(err, apperr.KindUnauthorized))
	}
	_, err := svc.Login(context.Background(), "OPS@example.com", "s3cret", "1.2.3.4")
	require.True(t, apperr.Is(err, apperr.KindRateLimited))

	// Another client address has its own budget.
	_, err = svc.Login(context.Background(), "ops@example.com", "s3cret", "5.6.7.8")
	require.NoError(t, err)
}

func TestLogin_LimiterDownFailsOpen(t *testing.T) {
	rl := &authmocks.MockRateLimiter{}
	rl.On("Allow", mock.Anything, mock.Anything, int64(3), time.Minute).Return(false, int64(0), errors.New("redis down")).Once()
	rl.On("Reset", mock.Anything, "login:ops@example.com:ip").Return(nil).Once()

	repo := &authmocks.MockRepository{}
	repo.On("GetAdminByEmail", mock.Anything, "ops@example.com").Return(adminWithPassword(t, "s3cret"), nil).Once()
	svc := newTestService(t, repo, rl)

	_, err := svc.Login(context.Background(), "ops@example.com", "s3cret", "ip")
	require.NoError(t, err)
	rl.AssertExpectations(t)
}

func TestAuthenticate_Expired(t *testing.T) {
	svc := newTestService(t, &authmocks.MockRepository{}, nil)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	token, _, err := svc.issue(&models.Admin{ID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = svc.Authenticate(token)
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))
	require.Equal(t, "session expired", err.Error())
}

func TestAuthenticate_Rejects(t *testing.T) {
	svc := newTestService(t, &authmocks.MockRepository{}, nil)

	_, err := svc.Authenticate("")
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Authenticate("not.a.token")
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))

	// Signed with another key.
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = svc.Authenticate(other)
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))

	// No expiry at all.
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "1"},
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = svc.Authenticate(noExp)
	require.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestEnsureAdmin(t *testing.T) {
	repo := &authmocks.MockRepository{}
	repo.On("CreateAdmin", mock.Anything, mock.MatchedBy(func(a models.Admin) bool {
		return a.Name == "Admin" && a.Email == "root@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("pw")) == nil
	})).Return(true, nil).Once()
	svc := newTestService(t, repo, nil)

	created, err := svc.EnsureAdmin(context.Background(), "", "root@example.com", "pw")
	require.NoError(t, err)
	require.True(t, created)

	_, err = svc.EnsureAdmin(context.Background(), "x", "", "pw")
	require.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertExpectations(t)
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	require.False(t, ok)

	s := &Session{AdminID: 1, ExpiresAt: time.Now().Add(time.Minute)}
	got, ok := SessionFrom(WithSession(context.Background(), s))
	require.True(t, ok)
	require.Same(t, s, got)
	require.False(t, got.Expired(time.Now()))
	require.True(t, got.Expired(s.ExpiresAt))
}
