// Package web exposes the tag matching engine over HTTP for the catalog
// platform's controllers.
package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/matcatalog/tag-matching/internal/logger"
	"github.com/matcatalog/tag-matching/internal/matcher"
	"github.com/matcatalog/tag-matching/internal/web/handlers"
	"github.com/matcatalog/tag-matching/internal/web/middleware"
)

// Server serves the matching API.
type Server struct {
	service    *matcher.Service
	httpServer *http.Server
	router     *mux.Router
	log        *log.Logger
}

// NewServer creates a web server over the given matching service.
func NewServer(service *matcher.Service, addr string) *Server {
	s := &Server{
		service: service,
		log:     logger.New("web"),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	matchHandler := &handlers.MatchHandler{Service: s.service}
	adminHandler := &handlers.AdminHandler{Service: s.service}
	decisionHandler := &handlers.DecisionHandler{Service: s.service}

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/match", matchHandler.Match).Methods("POST")
	api.HandleFunc("/match/batch", matchHandler.MatchBatch).Methods("POST")
	api.HandleFunc("/decisions", decisionHandler.Record).Methods("POST")

	api.HandleFunc("/health", adminHandler.Health).Methods("GET")
	api.HandleFunc("/health/backing", adminHandler.BackingHealth).Methods("GET")
	api.HandleFunc("/cache/stats", adminHandler.CacheStats).Methods("GET")
	api.HandleFunc("/cache/clear", adminHandler.CacheClear).Methods("POST")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully and
// flushes in-flight decision log writes.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", "err", err)
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.service.Flush()
	return nil
}
