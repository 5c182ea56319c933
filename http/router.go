package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lotus-engine/metrics"
	"lotus-engine/service"
)

// RouterConfig wires the services into the HTTP API. RateLimiter and
// Metrics are optional.
type RouterConfig struct {
	Tranches    *service.TrancheService
	Simulations *service.SimulationService
	Scenarios   *service.ScenarioService
	Presets     *service.PresetService
	Snapshots   *service.SnapshotService

	RateLimiter *RateLimiter
	Metrics     *metrics.Registry
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(MetricsMiddleware(cfg.Metrics))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	tranches := NewTrancheHandler(cfg.Tranches, logger)
	simulations := NewSimulationHandler(cfg.Simulations, logger)
	scenarios := NewScenarioHandler(cfg.Scenarios, logger)
	presets := NewPresetHandler(cfg.Presets, logger)
	snapshots := NewSnapshotHandler(cfg.Snapshots, logger)

	r.Route("/v1", func(v1 chi.Router) {
		if cfg.RateLimiter != nil {
			v1.Use(RateLimitMiddleware(cfg.RateLimiter))
		}

		v1.Post("/tranches/compute", tranches.Compute)
		v1.Post("/tranches/funding-matrix", tranches.FundingMatrix)

		v1.Post("/simulations/interest", simulations.InterestAccrual)
		v1.Post("/simulations/bad-debt", simulations.BadDebt)

		v1.Get("/scenarios/{id}", scenarios.Evaluate)
		v1.Get("/scenarios/{id}/chart", scenarios.Chart)

		v1.Get("/presets", presets.List)
		v1.Get("/presets/{name}", presets.Get)

		v1.Get("/snapshots/{id}", snapshots.Get)
	})

	return r
}
