// Package proxy provides the credential-forwarding reverse proxy that
// sits between the browser and the search backend. Backend credentials
// stay server-side; the browser only ever talks to the proxy.
package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Config holds proxy configuration
type Config struct {
	Host string
	Port int

	// Target is the backend base URL the proxy forwards to
	Target string

	// Username and Password are injected as Basic auth on every
	// forwarded request. Empty means the backend is unauthenticated.
	Username string
	Password string

	// AllowedOrigin is the single browser origin allowed to call the
	// proxy with credentials
	AllowedOrigin string
}

// DefaultConfig returns sensible defaults
func DefaultConfig(target string) Config {
	return Config{
		Host:          "0.0.0.0",
		Port:          8081,
		Target:        target,
		AllowedOrigin: "*",
	}
}

// Server is the reverse proxy server
type Server struct {
	httpServer *http.Server
	cfg        Config
}

// NewServer creates a new proxy server
func NewServer(cfg Config) (*Server, error) {
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", cfg.Target, err)
	}

	rp := httputil.NewSingleHostReverseProxy(target)

	baseDirector := rp.Director
	rp.Director = func(req *http.Request) {
		baseDirector(req)
		req.Host = target.Host
		if cfg.Username != "" || cfg.Password != "" {
			req.SetBasicAuth(cfg.Username, cfg.Password)
		}
	}

	rp.ModifyResponse = func(resp *http.Response) error {
		log.Printf("proxy %s %s %d [%s]",
			resp.Request.Method, resp.Request.URL.Path, resp.StatusCode,
			resp.Request.Header.Get("X-Request-Id"))
		return nil
	}

	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("proxy error [%s]: %v", r.Header.Get("X-Request-Id"), err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": fmt.Sprintf("proxy error: %v", err),
		})
	}

	s := &Server{cfg: cfg}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.wrap(rp),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// wrap adds CORS headers and a per-request ID before forwarding
func (s *Server) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if s.cfg.AllowedOrigin == "*" || s.cfg.AllowedOrigin == origin {
			w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		// Handle preflight locally; the backend never sees it
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Header.Get("X-Request-Id") == "" {
			r.Header.Set("X-Request-Id", uuid.NewString())
		}

		next.ServeHTTP(w, r)
	})
}

// Start starts the proxy with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting proxy on %s -> %s", s.httpServer.Addr, s.cfg.Target)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Proxy error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down proxy...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("proxy shutdown failed: %w", err)
	}

	log.Println("Proxy stopped")
	return nil
}

// Stop stops the proxy
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the proxy's root handler, for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
