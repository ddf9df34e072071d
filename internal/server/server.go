// Package server assembles the public site, the public form API and the
// authenticated back-office API into one HTTP handler.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/articles"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/auth"
	"github.com/ziadkadry99/caravansite/internal/brochures"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/config"
	"github.com/ziadkadry99/caravansite/internal/dashboard"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/events"
	"github.com/ziadkadry99/caravansite/internal/importers"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/locator"
	"github.com/ziadkadry99/caravansite/internal/logging"
	"github.com/ziadkadry99/caravansite/internal/metrics"
	"github.com/ziadkadry99/caravansite/internal/notifications"
	"github.com/ziadkadry99/caravansite/internal/progress"
	"github.com/ziadkadry99/caravansite/internal/quotes"
	"github.com/ziadkadry99/caravansite/internal/ratelimit"
	"github.com/ziadkadry99/caravansite/internal/registrations"
	"github.com/ziadkadry99/caravansite/internal/reviews"
	"github.com/ziadkadry99/caravansite/internal/site"
	"github.com/ziadkadry99/caravansite/internal/warranty"
)

// sweepInterval is how often idle rate limit buckets are dropped.
const sweepInterval = 5 * time.Minute

// Server is the caravansite HTTP server.
type Server struct {
	cfg        *config.Config
	db         *db.DB
	log        *zap.Logger
	hub        *dashboard.Hub
	limiter    *ratelimit.Limiter
	proxies    ratelimit.Proxies
	dispatcher *notifications.Dispatcher
	router     chi.Router
	httpServer *http.Server
}

// New wires every store and handler onto a fresh router.
func New(cfg *config.Config, database *db.DB, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}
	proxies, err := ratelimit.ParseProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		db:      database,
		log:     log,
		hub:     dashboard.NewHub(log),
		limiter: ratelimit.New(cfg.RateLimit.PerMinute),
		proxies: proxies,
	}

	router, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.proxies.RealIP)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Site.BaseURL != "" {
		corsOpts.AllowedOrigins = append(corsOpts.AllowedOrigins, s.cfg.Site.BaseURL)
	}
	if s.cfg.Server.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// Stores.
	auditStore := audit.NewStore(s.db)
	rec := admin.NewRecorder(auditStore, s.log)
	users := auth.NewStore(s.db)
	issuer := auth.NewIssuer(s.cfg.Admin.JWTSecret, time.Duration(s.cfg.Admin.TokenTTLHours)*time.Hour)

	quoteStore := quotes.NewStore(s.db)
	brochureStore := brochures.NewStore(s.db)
	claimStore := warranty.NewStore(s.db)
	eventStore := events.NewStore(s.db)
	registrationStore := registrations.NewStore(s.db)
	reviewStore := reviews.NewStore(s.db)
	articleStore := articles.NewStore(s.db)
	renderer := articles.NewRenderer()

	noteStore := notifications.NewStore(s.db)
	dispatcher := notifications.NewDispatcher(noteStore, s.log, notifications.SendersFromConfig(s.cfg.Notifications, s.cfg.Site.Name)...)
	s.dispatcher = dispatcher
	notifier := leads.NewFanout(s.log, metrics.LeadCounter, s.hub, dispatcher)

	importer := importers.New(s.db, rec, progress.Nop{}, s.log)
	dash := dashboard.New(s.hub, s.db, noteStore)

	// Public pages.
	pages, err := site.New(site.Options{
		Name:          s.cfg.Site.Name,
		Articles:      articleStore,
		Renderer:      renderer,
		Events:        eventStore,
		Registrations: registrationStore,
		Reviews:       reviewStore,
		Dealers:       locator.Dealers,
		ServiceAgents: locator.ServiceAgents,
		Log:           s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("building site: %w", err)
	}
	pages.RegisterRoutes(r)
	dash.RegisterPage(r)

	r.Route("/api", func(r chi.Router) {
		// Public API. Only submissions count against the rate limit.
		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware)

			catalog.RegisterRoutes(r)
			locator.RegisterRoutes(r, locator.Dealers)
			locator.RegisterRoutes(r, locator.ServiceAgents)
			articles.RegisterRoutes(r, articleStore, renderer)
			events.RegisterRoutes(r, eventStore)
			reviews.RegisterRoutes(r, reviewStore, notifier)

			quotes.RegisterRoutes(r, quoteStore, notifier)
			brochures.RegisterRoutes(r, brochureStore, notifier)
			warranty.RegisterRoutes(r, claimStore, notifier)
			registrations.RegisterRoutes(r, registrationStore, eventStore, notifier)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(s.limiter.Middleware)
				auth.RegisterRoutes(r, users, issuer)
			})

			// Back office.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(issuer))

				quotes.RegisterAdminRoutes(r, quoteStore, rec)
				brochures.RegisterAdminRoutes(r, brochureStore, rec)
				warranty.RegisterAdminRoutes(r, claimStore, rec)
				events.RegisterAdminRoutes(r, eventStore, rec)
				registrations.RegisterAdminRoutes(r, registrationStore, rec)
				reviews.RegisterAdminRoutes(r, reviewStore, rec)
				articles.RegisterAdminRoutes(r, articleStore, renderer, rec)

				audit.RegisterRoutes(r, auditStore)
				notifications.RegisterRoutes(r, noteStore, dispatcher)
				importers.RegisterRoutes(r, importer)
				admin.RegisterStatsRoutes(r, s.db)
				dash.RegisterRoutes(r)
			})
		})
	})

	r.With(auth.RequireAdmin(issuer)).Get("/ws/admin", s.hub.HandleWebSocket)

	return r, nil
}

// Router returns the assembled handler.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live lead feed.
func (s *Server) Hub() *dashboard.Hub { return s.hub }

// Start runs the live feed and the rate limit sweeper, then listens until
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)
	go s.sweep(ctx)

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("caravansite listening", zap.String("addr", addr), zap.String("database", s.db.Path()))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Sweep(); n > 0 {
				s.log.Debug("rate limiter swept", zap.Int("buckets", n))
			}
		}
	}
}

// Shutdown stops accepting requests, then waits for background lead
// notifications to finish or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.dispatcher == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.dispatcher.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for notifications: %w", ctx.Err())
	}
}
