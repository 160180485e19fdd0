package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/BearBump/ParcelDesk/internal/services/auth"
	"github.com/BearBump/ParcelDesk/internal/services/contacts"
	"github.com/BearBump/ParcelDesk/internal/services/inbox"
	"github.com/BearBump/ParcelDesk/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validatorv10 "github.com/go-playground/validator/v10"
)

type TrackingService interface {
	CreateTracking(ctx context.Context, in models.TrackingCreateInput) (*models.TrackingRecord, error)
	ListTrackings(ctx context.Context) ([]*models.TrackingRecord, error)
	UpdateRecipient(ctx context.Context, upd models.RecipientUpdate) (*models.TrackingRecord, error)
	UpdateStatus(ctx context.Context, upd models.StatusUpdate) (*models.TrackingRecord, error)
	Lookup(ctx context.Context, trackingID string) (*models.TrackingSnapshot, error)
	DashboardCounts(ctx context.Context) (models.StatusCounts, error)
}

type ContactService interface {
	Import(ctx context.Context, filename string, body io.Reader) (contacts.ImportResult, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
}

type PackageService interface {
	List(ctx context.Context) ([]*models.Package, error)
	Get(ctx context.Context, id uint64) (*models.Package, error)
	Create(ctx context.Context, in models.PackageInput) (*models.Package, error)
	Update(ctx context.Context, id uint64, in models.PackageInput) (*models.Package, error)
	Delete(ctx context.Context, id uint64) error
}

type InboxService interface {
	Submit(ctx context.Context, in inbox.Submission) (*models.ContactMessage, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Delete(ctx context.Context, id uint64) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password, clientIP string) (*auth.LoginResult, error)
	Authenticate(token string) (*auth.Session, error)
}

type Deps struct {
	Trackings TrackingService
	Contacts  ContactService
	Packages  PackageService
	Inbox     InboxService
	Auth      Authenticator

	Limiter         RateLimiter
	LookupPerMinute int64
	AllowedOrigins  []string
	MaxUploadBytes  int64
}

type handlers struct {
	d        Deps
	validate *validatorv10.Validate
}

// NewRouter builds the public HTTP surface. Callers may mount more routes
// (health, docs) on the returned router.
func NewRouter(d Deps) chi.Router {
	h := &handlers{d: d, validate: validation.New()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", h.login)
		r.With(throttle(d.Limiter, "lookup", d.LookupPerMinute)).
			Get("/customer-tracking/{trackingId}", h.lookup)
		r.Post("/contactmessages", h.submitMessage)

		r.Group(func(r chi.Router) {
			r.Use(requireSession(d.Auth))

			r.Get("/tracking", h.listTrackings)
			r.Post("/tracking", h.createTracking)
			r.Put("/tracking/{id}", h.updateRecipient)
			r.Post("/status", h.updateStatus)
			r.Get("/dashboard/counts", h.dashboardCounts)

			r.Get("/contact", h.listMessages)
			r.Get("/contactmessages", h.listMessages)
			r.Delete("/contactmessages/{id}", h.deleteMessage)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireSession(d.Auth))

		r.Get("/contacts", h.listContacts)
		r.Post("/contacts/import", h.importContacts)

		r.Route("/super-admin/packages", func(r chi.Router) {
			r.Get("/", h.listPackages)
			r.Post("/", h.createPackage)
			r.Get("/{id}", h.getPackage)
			r.Put("/{id}", h.updatePackage)
			r.Delete("/{id}", h.deletePackage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	return r
}
