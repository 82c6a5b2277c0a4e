package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/metrics"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option configures a Server.
type Option func(*Server)

// WithTemplates replaces the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(s *Server) {
		if files != nil {
			s.templates = files
		}
	}
}

// WithTransport sets the transport every new session submits through.
func WithTransport(t wizard.Transport) Option {
	return func(s *Server) {
		if t != nil {
			s.wizardOptions = append(s.wizardOptions, wizard.WithTransport(t))
		}
	}
}

// WithWizardOptions appends options applied to every new session.
func WithWizardOptions(options ...wizard.Option) Option {
	return func(s *Server) {
		s.wizardOptions = append(s.wizardOptions, options...)
	}
}

// WithLogger sets the logger for request and submission logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry registers the wizard metrics on reg and serves it on /metrics.
// By default the server uses a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithSessionTTL sets the idle time after which sessions expire.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithThemeSelector resolves theme tokens through selector instead of the
// built-in manifest.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(s *Server) {
		if selector != nil {
			s.selector = selector
		}
	}
}

// WithTheme picks the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server is the HTML shell. Each browser session owns one wizard.
type Server struct {
	templates     fs.FS
	wizardOptions []wizard.Option
	logger        *zap.Logger
	registry      *prometheus.Registry
	ttl           time.Duration
	selector      theme.ThemeSelector
	themeName     string
	themeVariant  string
	now           func() time.Time

	engine   *engine
	sessions *sessionStore
	metrics  *metrics.Metrics
	theme    themeView
	handler  http.Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	openapiOnce sync.Once
	openapi     []byte
	openapiErr  error
}

// NewServer builds the shell. Call Close to stop in-flight submissions.
func NewServer(options ...Option) (*Server, error) {
	s := &Server{
		templates: DefaultTemplates(),
		logger:    zap.NewNop(),
		ttl:       DefaultSessionTTL,
		themeName: DefaultThemeName,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	m, err := metrics.New(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	if s.selector == nil {
		sel, err := NewThemeSelector()
		if err != nil {
			return nil, err
		}
		s.selector = sel
	}
	selection, err := s.selector.Select(s.themeName, s.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("web: select theme: %w", err)
	}
	s.theme = buildThemeView(rendererConfig(selection))

	eng, err := newEngine(s.templates)
	if err != nil {
		return nil, err
	}
	s.engine = eng

	s.sessions = newSessionStore(s.ttl, s.now, s.newWizard)
	s.sessions.onOpen = s.metrics.SessionOpened
	s.sessions.onExpire = s.metrics.SessionClosed

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.handler = s.logRequests(s.routes())
	return s, nil
}

func (s *Server) newWizard() *wizard.Wizard {
	options := append([]wizard.Option{wizard.WithLogger(s.logger)}, s.wizardOptions...)
	options = append(options, wizard.WithObserver(s.metrics))
	return wizard.New(options...)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /wizard", s.handleWizard)
	mux.HandleFunc("POST /wizard", s.handlePost)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close cancels in-flight submissions and waits for them to settle.
func (s *Server) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", s.now().Sub(start)),
		)
	})
}
