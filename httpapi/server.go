package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Config struct {
	Addr    string
	Timeout time.Duration
}

func loggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r)
		})
	}
}

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *log.Logger
}

func NewServer(ledger Ledger, logger *log.Logger, config Config) *Server {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &Server{
		httpServer: &http.Server{
			Addr:         config.Addr,
			Handler:      NewRouter(ledger, logger),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
		logger: logger,
	}
}

// NewRouter wires the ledger operations to their routes.
func NewRouter(ledger Ledger, logger *log.Logger) http.Handler {
	h := NewHandler(ledger, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Response{OK: true})
	})

	r.Post("/login", h.PostLogin)
	r.Post("/logout", h.PostLogout)
	r.Post("/transfer", h.PostTransfer)
	r.Post("/loan", h.PostLoan)
	r.Post("/sort", h.PostSort)
	r.Post("/close", h.PostClose)
	r.Get("/view", h.GetView)
	r.Get("/history", h.GetHistory)

	return r
}

// Start binds the listen address and serves in the background. A bind
// failure is returned before anything is served.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	s.logger.Info("Starting HTTP server", "address", listener.Addr().String())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Addr is the bound address once Start succeeded, useful with ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
