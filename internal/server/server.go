package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sooperboring/content-studio/internal/auth"
	"github.com/sooperboring/content-studio/internal/config"
	"github.com/sooperboring/content-studio/internal/remote"
	"github.com/sooperboring/content-studio/internal/remote/postgres"
	"github.com/sooperboring/content-studio/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	svc        remote.Service
	store      *postgres.Store
	auth       *auth.Service
	sessions   *registry
	janitor    *janitor
	limiter    *ratelimit.Limiter
}

// New creates a server wired to Postgres and, when configured, Redis.
func New(cfg *config.AppConfig) (*Server, error) {
	ctx := context.Background()

	store, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.StorageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = newRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	s, err := newWithService(cfg, store, rdb)
	if err != nil {
		store.Close()
		return nil, err
	}
	s.store = store
	return s, nil
}

// newRedisClient creates and verifies a Redis client connection.
func newRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// newWithService builds the server on any remote.Service implementation.
// Tests inject an in-memory fake here.
func newWithService(cfg *config.AppConfig, svc remote.Service, rdb *redis.Client) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		svc:      svc,
		auth:     auth.NewService(svc, passwordConfig, auth.NewTokenService(jwtConfig), rdb, cfg.SessionTTL),
		sessions: newRegistry(svc, cfg.AutoSaveDelay),
		limiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
	s.janitor = newJanitor(s.sessions, cfg.SessionTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/me", s.handleMe)

	// Content browsing endpoints
	mux.HandleFunc("GET /content/{type}", s.handleListContent)
	mux.HandleFunc("GET /content/{type}/{id}", s.handleGetContent)
	mux.HandleFunc("DELETE /content/{type}/{id}", s.requireDashboard(s.handleDeleteContent))

	// Editing session endpoints
	mux.HandleFunc("POST /sessions", s.requireDashboard(s.handleCreateSession))
	mux.HandleFunc("GET /sessions/{id}", s.handleSessionState)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleCloseSession)
	mux.HandleFunc("POST /sessions/{id}/fields", s.handleSetField)
	mux.HandleFunc("POST /sessions/{id}/commit", s.handleCommit)

	// Sub-record entry endpoints
	mux.HandleFunc("POST /sessions/{id}/entries/{field}", s.handleAddEntry)
	mux.HandleFunc("PATCH /sessions/{id}/entries/{field}/{entry_id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /sessions/{id}/entries/{field}/{entry_id}", s.handleRemoveEntry)

	// Skills endpoints
	mux.HandleFunc("GET /sessions/{id}/skills", s.handleListSkills)
	mux.HandleFunc("POST /sessions/{id}/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /sessions/{id}/skills", s.handleRemoveSkill)
	mux.HandleFunc("GET /sessions/{id}/skills/suggest", s.handleSuggestSkills)

	// Upload endpoints
	mux.HandleFunc("POST /sessions/{id}/uploads/{field}", s.handleUpload)
	mux.HandleFunc("GET /sessions/{id}/uploads/{field}", s.handleUploadState)

	// Stored object serving
	mux.HandleFunc("GET /storage/{bucket}/{objpath...}", s.handleObject)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // folder uploads can be large
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.janitor.Start()

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.janitor.Stop()
	s.limiter.Stop()
	s.sessions.CloseAll()
	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles requests per client address and endpoint tier
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.limiter.Allow(clientAddr(r), r.URL.Path, r.Method)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", info.ResetTime.UTC().Format(time.RFC3339))
		}

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests. Please slow down.",
				"limit":       info.Limit,
				"retry_after": int(info.RetryAfter.Seconds()) + 1,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr extracts the client IP from the request's remote address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps an error to its HTTP status
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}
