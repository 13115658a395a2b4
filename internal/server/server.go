// Package server exposes the study service over HTTP: the dashboard page, the JSON API,
// downloads, health checks and Prometheus metrics.
package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/plaza/internal/geocoding"
	"github.com/UnknownOlympus/plaza/internal/metrics"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/UnknownOlympus/plaza/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Studies is the part of the study service the HTTP layer depends on.
type Studies interface {
	Load(ctx context.Context, fileName string, data []byte) (*models.Study, error)
	Get(id string) (*models.Study, error)
	Summarize(study *models.Study) service.Summary
	Options(study *models.Study) map[models.Field][]string
	View(ctx context.Context, id string, query service.ViewQuery) (*service.ViewResult, error)
	History(ctx context.Context, limit int) ([]models.StudyRecord, error)
}

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	log          *slog.Logger
	studies      Studies
	places       geocoding.Provider // nil when place search is disabled
	placesName   string
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	db           Pinger // nil when study history is disabled
	maxUpload    int64
	historyLimit int
	page         *template.Template
}

// Options configures a Server. Places and DB are optional.
type Options struct {
	Logger         *slog.Logger
	Studies        Studies
	Places         geocoding.Provider
	PlacesProvider string
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	DB             Pinger
	MaxUploadBytes int64
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// New parses the dashboard template and returns a Server.
func New(opts Options) (*Server, error) {
	page, err := template.New("index.gohtml").
		Funcs(template.FuncMap{"fieldLabel": fieldLabel}).
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	return &Server{
		log:          opts.Logger,
		studies:      opts.Studies,
		places:       opts.Places,
		placesName:   opts.PlacesProvider,
		metrics:      opts.Metrics,
		gatherer:     opts.Gatherer,
		db:           opts.DB,
		maxUpload:    opts.MaxUploadBytes,
		historyLimit: defaultHistoryLimit,
		page:         page,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.instrument("dashboard", s.handleDashboard))
	mux.Handle("POST /api/studies", s.instrument("upload", s.handleUpload))
	mux.Handle("GET /api/studies", s.instrument("history", s.handleHistory))
	mux.Handle("GET /api/studies/{id}/options", s.instrument("options", s.handleOptions))
	mux.Handle("POST /api/studies/{id}/view", s.instrument("view", s.handleView))
	mux.Handle("POST /api/studies/{id}/export.xlsx", s.instrument("export_xlsx", s.handleExportXLSX))
	mux.Handle("POST /api/studies/{id}/cards.zip", s.instrument("export_cards", s.handleExportCards))
	mux.Handle("GET /api/map/layer", s.instrument("map_layer", s.handleMapLayer))
	mux.Handle("GET /api/places", s.instrument("places", s.handlePlaces))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return mux
}

// NewHTTPServer wraps the handler with the server timeouts used in every environment.
func NewHTTPServer(port int, handler http.Handler) *http.Server {
	readTimeout := 30
	writeTimeout := 60
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(readTimeout) * time.Second,
		WriteTimeout:      time.Duration(writeTimeout) * time.Second,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records the duration of every request by route and status code.
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		s.metrics.RequestSeconds.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(elapsed.Seconds())
		s.log.DebugContext(r.Context(), "Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	s.log.DebugContext(ctx, "Health checks completed", "status", status)
}

var fieldLabels = map[models.Field]string{
	models.FieldTypology: "Tipología",
	models.FieldTier:     "Tier",
	models.FieldZone:     "Zona",
	models.FieldCity:     "Ciudad",
	models.FieldFloor:    "Planta",
	models.FieldBedrooms: "Dormitorios",
}

func fieldLabel(field models.Field) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return string(field)
}
