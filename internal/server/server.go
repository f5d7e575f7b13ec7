// Package server wires the HTTP API: router, middleware, static file
// serving and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xXRex45Xx/MyPortfolio/internal/handler"
	"github.com/xXRex45Xx/MyPortfolio/internal/server/middleware"
	"github.com/xXRex45Xx/MyPortfolio/internal/service"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
	"github.com/xXRex45Xx/MyPortfolio/internal/upload"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	BaseURL         string
}

// Server is the top-level HTTP server. It owns the chi router and delegates
// to the store, the auth service and the upload store.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	uploads    *upload.Store
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server with all routes and middleware wired. Call
// ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, uploads *upload.Store, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		uploads: uploads,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Get("/openapi.json", handler.NewOpenAPIHandler(s.cfg.BaseURL).ServeSpec)

	// Uploaded files are public: project and profile images under /images,
	// the resume under /uploads.
	s.serveUploadDir(r, "/images", upload.ProfilePicture.Dir)
	s.serveUploadDir(r, "/uploads", upload.Resume.Dir)

	authHandler := handler.NewAuthHandler(s.authSvc)
	filesHandler := handler.NewFilesHandler(s.uploads)
	myInfoHandler := handler.NewMyInfoHandler(s.store)
	skillsHandler := handler.NewSkillsHandler(s.store)
	projectsHandler := handler.NewProjectsHandler(s.store, s.uploads)
	socialHandler := handler.NewSocialMediaHandler(s.store)

	r.Route("/api", func(r chi.Router) {
		// Login and reset are unauthenticated; reset verifies the old
		// password itself.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		// Public reads.
		r.Get("/my-info", myInfoHandler.Get)
		r.Get("/skills", skillsHandler.List)
		r.Get("/projects", projectsHandler.List)
		r.Get("/projects/{id}", projectsHandler.Get)
		r.Get("/social-media", socialHandler.List)
		r.Get("/files/resume", filesHandler.GetResume)

		// Everything that mutates requires the admin token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authSvc))

			r.Put("/my-info", myInfoHandler.Update)

			r.Post("/skills", skillsHandler.Create)
			r.Put("/skills/{id}", skillsHandler.Update)
			r.Delete("/skills/{id}", skillsHandler.Delete)

			r.Post("/projects", projectsHandler.Create)
			r.Put("/projects/{id}", projectsHandler.Update)
			r.Delete("/projects/{id}", projectsHandler.Delete)

			r.Post("/social-media", socialHandler.Create)
			r.Put("/social-media/{id}", socialHandler.Update)
			r.Delete("/social-media/{id}", socialHandler.Delete)

			r.Post("/files/resume", filesHandler.UploadResume)
			r.Post("/files/profile-picture", filesHandler.UploadProfilePicture)
		})
	})

	s.router = r
}

// serveUploadDir mounts a file server for one upload subdirectory. Directory
// requests 404 instead of listing contents.
func (s *Server) serveUploadDir(r chi.Router, prefix, dir string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(s.uploads.Root(), dir))))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fs.ServeHTTP(w, req)
	})
}

// handleHealthz is a liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe: 200 when the database answers a ping.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
