package auth

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sooperboring/content-studio/internal/config"
	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

const (
	usersTable     = "users"
	allowlistTable = "dashboard_users"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike; callers must not distinguish the two.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = fmt.Errorf("email already registered")

// ErrSessionExpired is returned when a token is valid but its server-side
// session is gone.
var ErrSessionExpired = fmt.Errorf("session expired")

// Service implements registration, login and session checks on top of the
// remote content service. When a Redis client is provided, sessions are
// tracked server-side and logout revokes tokens; without one, tokens stand
// alone until they expire.
type Service struct {
	svc        remote.Service
	passwords  *config.PasswordConfig
	tokens     *TokenService
	rdb        *redis.Client
	sessionTTL time.Duration
}

// NewService wires the auth service. rdb may be nil.
func NewService(svc remote.Service, pw *config.PasswordConfig, tokens *TokenService, rdb *redis.Client, sessionTTL time.Duration) *Service {
	return &Service{svc: svc, passwords: pw, tokens: tokens, rdb: rdb, sessionTTL: sessionTTL}
}

// Register creates an account and returns a logged-in response.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.svc.Select(ctx, usersTable, remote.Query{Eq: map[string]any{"email": email}, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.svc.Insert(ctx, usersTable, record.Record{
		"name":          req.Name,
		"email":         email,
		"password_hash": hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issue(ctx, user)
}

// Login verifies credentials and returns a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users, err := s.svc.Select(ctx, usersTable, remote.Query{Eq: map[string]any{"email": email}, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[0]
	if !s.passwords.VerifyPassword(req.Password, user.String("password_hash")) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *Service) issue(ctx context.Context, user record.Record) (*LoginResponse, error) {
	userID, err := uuid.Parse(user.ID())
	if err != nil {
		return nil, fmt.Errorf("account has invalid id %q: %w", user.ID(), err)
	}

	token, tokenID, err := s.tokens.Generate(userID)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		ttl := time.Duration(s.tokens.config.ExpirationHours) * time.Hour
		if err := s.rdb.Set(ctx, sessionKey(tokenID), user.ID(), ttl).Err(); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
	}

	return &LoginResponse{User: publicUser(user), Token: token}, nil
}

// Logout revokes the token's server-side session. Without Redis this is a
// logged no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if s.rdb == nil {
		log.Printf("[auth] logout without session store, token %s expires naturally", claims.ID)
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(claims.ID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Session resolves a token to its account record, with the password hash
// stripped.
func (s *Service) Session(ctx context.Context, token string) (record.Record, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		if err := s.rdb.Get(ctx, sessionKey(claims.ID)).Err(); err == redis.Nil {
			return nil, ErrSessionExpired
		} else if err != nil {
			return nil, fmt.Errorf("failed to check session: %w", err)
		}
	}

	user, err := s.svc.SelectOne(ctx, usersTable, claims.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return record.Record(publicUser(user)), nil
}

// DashboardAllowed reports whether an email is on the dashboard allow-list.
func (s *Service) DashboardAllowed(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := s.svc.Select(ctx, allowlistTable, remote.Query{Eq: map[string]any{"email": email}, Limit: 1})
	if err != nil {
		return false, fmt.Errorf("failed to check dashboard access: %w", err)
	}
	return len(rows) > 0, nil
}

func publicUser(user record.Record) map[string]any {
	out := user.Clone()
	delete(out, "password_hash")
	return out
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
