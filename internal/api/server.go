// Package api exposes the HTTP control surface: sync triggers, job status,
// content lookup and refresh, change streams, health and metrics.
package api

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media_syncer/internal/domain"
	"media_syncer/internal/scheduler"
	"media_syncer/internal/service"
)

type Scheduler interface {
	Submit(name string, job scheduler.Job) string
	Cancel(name string) bool
	Status(name string) scheduler.Status
	IsRunning(ctx context.Context, name string) <-chan bool
}

type FavoritesSyncer interface {
	SyncFavorites(ctx context.Context) (*domain.SyncStats, error)
}

type ListSyncer interface {
	SyncList(ctx context.Context, remoteID string) (*domain.SyncStats, error)
}

type ContentReader interface {
	Get(ctx context.Context, ref domain.ContentRef) (*domain.Content, error)
}

type ContentRefresher interface {
	Refresh(ctx context.Context, ref domain.ContentRef) (*service.RefreshResult, error)
}

type Browser interface {
	Browse(ctx context.Context, query domain.CatalogQuery, session *service.BrowseSession) iter.Seq2[domain.Content, error]
}

type ContentWatcher interface {
	Subscribe(ctx context.Context, ref domain.ContentRef) <-chan *domain.Content
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators behind the routes. Watcher may be nil, which
// disables the watch route.
type Deps struct {
	Scheduler Scheduler
	Favorites FavoritesSyncer
	Lists     ListSyncer
	Contents  ContentReader
	Refresher ContentRefresher
	Browser   Browser
	Watcher   ContentWatcher
	DB        Pinger
	Gatherer  prometheus.Gatherer
}

type Options struct {
	// SyncRequests per SyncWindow and client IP are accepted on the sync
	// trigger routes. Zero disables the limit.
	SyncRequests int
	SyncWindow   time.Duration
	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string
}

type Server struct {
	deps   Deps
	opts   Options
	logger *slog.Logger
}

func NewServer(deps Deps, opts Options, logger *slog.Logger) *Server {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if opts.SyncWindow == 0 {
		opts.SyncWindow = time.Minute
	}
	return &Server{
		deps:   deps,
		opts:   opts,
		logger: logger.With("component", "api"),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/sync", func(r chi.Router) {
		if s.opts.SyncRequests > 0 {
			r.Use(httprate.Limit(
				s.opts.SyncRequests,
				s.opts.SyncWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusTooManyRequests, "too many sync requests")
				}),
			))
		}
		r.Post("/favorites", s.syncFavorites)
		r.Post("/lists/{remoteID}", s.syncList)
	})

	r.Route("/jobs/{name}", func(r chi.Router) {
		r.Get("/", s.jobStatus)
		r.Delete("/", s.cancelJob)
		r.Get("/watch", s.watchJob)
	})

	r.Get("/browse/{kind}", s.browse)

	r.Route("/contents/{kind}/{id}", func(r chi.Router) {
		r.Get("/", s.getContent)
		r.Post("/refresh", s.refreshContent)
		if s.deps.Watcher != nil {
			r.Get("/watch", s.watchContent)
		}
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
