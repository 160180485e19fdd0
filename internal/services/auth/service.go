package auth

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a models.Admin) (bool, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
	Reset(ctx context.Context, key string) error
}

type Config struct {
	Secret         []byte
	TokenTTL       time.Duration
	LoginPerMinute int64
}

type LoginResult struct {
	Token     string
	Admin     *models.Admin
	ExpiresAt time.Time
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const issuer = "parceldesk"

var errBadCredentials = apperr.Unauthorized("invalid email or password")

type Service struct {
	repo    Repository
	limiter RateLimiter
	cfg     Config
	now     func() time.Time
}

// New builds the service. limiter may be nil, then logins are not throttled.
func New(repo Repository, limiter RateLimiter, cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &Service{repo: repo, limiter: limiter, cfg: cfg, now: time.Now}, nil
}

func (s *Service) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	key := "login:" + strings.ToLower(email) + ":" + clientIP
	if s.limiter != nil && s.cfg.LoginPerMinute > 0 {
		ok, _, err := s.limiter.Allow(ctx, key, s.cfg.LoginPerMinute, time.Minute)
		if err != nil {
			slog.Warn("login rate limiter unavailable", "error", err.Error())
		} else if !ok {
			return nil, apperr.RateLimited("too many login attempts, try again later")
		}
	}

	a, err := s.repo.GetAdminByEmail(ctx, email)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		slog.Info("admin login rejected", "admin_id", a.ID)
		return nil, errBadCredentials
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, key)
	}

	token, exp, err := s.issue(a)
	if err != nil {
		return nil, err
	}
	slog.Info("admin logged in", "admin_id", a.ID)
	return &LoginResult{Token: token, Admin: a, ExpiresAt: exp}, nil
}

func (s *Service) issue(a *models.Admin) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.cfg.TokenTTL)
	c := claims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(a.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, exp.Truncate(time.Second), nil
}

// Authenticate verifies a bearer token and turns it into a Session. Expiry is
// checked here, so callers never see an expired session.
func (s *Service) Authenticate(token string) (*Session, error) {
	if token == "" {
		return nil, apperr.Unauthorized("missing bearer token")
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperr.Unauthorized("session expired")
	}
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}

	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, apperr.Unauthorized("invalid token")
	}

	sess := &Session{AdminID: id, Email: c.Email, TokenID: c.ID, ExpiresAt: c.ExpiresAt.Time}
	if sess.Expired(s.now()) {
		return nil, apperr.Unauthorized("session expired")
	}
	return sess, nil
}

// EnsureAdmin creates the admin account unless the e-mail already exists.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, apperr.Validation("admin email and password are required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "Admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, apperr.Validation("password cannot be hashed: " + err.Error())
	}

	created, err := s.repo.CreateAdmin(ctx, models.Admin{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return false, err
	}
	if created {
		slog.Info("admin account created", "email", email)
	}
	return created, nil
}
