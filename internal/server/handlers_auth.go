package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sooperboring/content-studio/internal/auth"
	"github.com/sooperboring/content-studio/internal/record"
)

// handleRegister creates a dashboard account and logs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.auth.Register(r.Context(), req)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleLogin verifies credentials and returns a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.auth.Login(r.Context(), req)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleLogout revokes the caller's session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		s.failResponse(w, &ErrUnauthorized{})
		return
	}
	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.failResponse(w, &ErrUnauthorized{})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the authenticated account.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authenticate(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// authenticate resolves the bearer token to an account record.
func (s *Server) authenticate(r *http.Request) (record.Record, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, &ErrUnauthorized{}
	}
	user, err := s.auth.Session(r.Context(), token)
	if err != nil {
		return nil, &ErrUnauthorized{}
	}
	return user, nil
}

// requireDashboard wraps a handler with authentication plus the dashboard
// allow-list check.
func (s *Server) requireDashboard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.authenticate(r)
		if err != nil {
			s.failResponse(w, err)
			return
		}
		allowed, err := s.auth.DashboardAllowed(r.Context(), user.String("email"))
		if err != nil {
			s.failResponse(w, err)
			return
		}
		if !allowed {
			s.failResponse(w, &ErrForbidden{})
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
