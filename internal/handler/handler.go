package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"hostel/internal/activity"
	"hostel/internal/auth"
	"hostel/internal/hostel"
	"hostel/internal/logger"
	"hostel/internal/metrics"
)

// ActivityLister reads back recorded activity.
type ActivityLister interface {
	List(ctx context.Context, collection string, limit int) ([]activity.Event, error)
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) bool

// Pages locates the static HTML served by the page routes.
type Pages struct {
	PublicDir string
	ViewsDir  string
}

func (p Pages) public(name string) string { return filepath.Join(p.PublicDir, name) }
func (p Pages) view(name string) string   { return filepath.Join(p.ViewsDir, name) }

// Session configures the cookie issued on login.
type Session struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
	Secure     bool
}

// Options collects the handler dependencies. Verifier defaults to
// auth.DefaultVerifier; Metrics, Activity and Health may be nil.
type Options struct {
	Service  *hostel.Service
	Verifier auth.Verifier
	Pages    Pages
	Session  Session
	Metrics  *metrics.Metrics
	Activity ActivityLister
	Health   map[string]HealthCheck
	Log      *zap.SugaredLogger
}

// Handler serves the hostel HTTP API and pages.
type Handler struct {
	svc      *hostel.Service
	verifier auth.Verifier
	pages    Pages
	publicFS http.FileSystem
	session  Session
	metrics  *metrics.Metrics
	activity ActivityLister
	health   map[string]HealthCheck
	log      *zap.SugaredLogger
}

// New builds a Handler from opts.
func New(opts Options) *Handler {
	if opts.Verifier == nil {
		opts.Verifier = auth.DefaultVerifier()
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Session.TTL <= 0 {
		opts.Session.TTL = 12 * time.Hour
	}
	return &Handler{
		svc:      opts.Service,
		verifier: opts.Verifier,
		pages:    opts.Pages,
		publicFS: http.Dir(opts.Pages.PublicDir),
		session:  opts.Session,
		metrics:  opts.Metrics,
		activity: opts.Activity,
		health:   opts.Health,
		log:      opts.Log,
	}
}
