package router

import (
	"net/http"

	_ "pet-house/docs"
	"pet-house/internal/domain/assistant"
	"pet-house/internal/domain/petstore"
	"pet-house/internal/middleware"
	"pet-house/internal/platform/logger"
	"pet-house/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Store     *petstore.Store
	Assistant *assistant.Service

	Logger logger.Logger // opcional

	// Opcional: sin gatherer no se expone /metrics.
	Gatherer prometheus.Gatherer

	// Opcional: si viene, limita /assistant por IP.
	RateLimiter *middleware.RateLimiter

	// Opcional, para "overdue" en tests.
	Clock petstore.Clock
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	petstore.RegisterRoutes(r, opts.Store, opts.Clock)

	if opts.Assistant != nil {
		var mws []func(http.Handler) http.Handler
		if opts.RateLimiter != nil {
			mws = append(mws, opts.RateLimiter.Middleware)
		}
		assistant.RegisterRoutes(r, opts.Assistant, mws...)
	}

	return r
}
