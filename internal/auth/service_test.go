package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooperboring/content-studio/internal/config"
	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote/remotetest"
)

func newTestService(svc *remotetest.Fake) *Service {
	pw := &config.PasswordConfig{BcryptCost: 10}
	tokens := NewTokenService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	return NewService(svc, pw, tokens, nil, 0)
}

func TestRegister_CreatesAccountAndIssuesToken(t *testing.T) {
	svc := remotetest.New()
	s := newTestService(svc)

	resp, err := s.Register(context.Background(), RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// Email is normalized and the hash never leaves the service.
	assert.Equal(t, "ada@example.com", resp.User["email"])
	assert.NotContains(t, resp.User, "password_hash")
	assert.Equal(t, 1, svc.Count("users"))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	s := newTestService(remotetest.New())
	ctx := context.Background()

	req := RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"}
	_, err := s.Register(ctx, req)
	require.NoError(t, err)

	_, err = s.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ValidatesRequest(t *testing.T) {
	s := newTestService(remotetest.New())

	_, err := s.Register(context.Background(), RegisterRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestLogin_RoundTrip(t *testing.T) {
	s := newTestService(remotetest.New())
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	resp, err := s.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	user, err := s.Session(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.String("name"))
	assert.NotContains(t, user, "password_hash")
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	s := newTestService(remotetest.New())
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err1 := s.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrongwrong"})
	_, err2 := s.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	assert.ErrorIs(t, err1, ErrInvalidCredentials)
	assert.ErrorIs(t, err2, ErrInvalidCredentials)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestSession_RejectsGarbageToken(t *testing.T) {
	s := newTestService(remotetest.New())
	_, err := s.Session(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestDashboardAllowed(t *testing.T) {
	svc := remotetest.New()
	svc.Seed("dashboard_users", record.Record{"email": "admin@example.com"})
	s := newTestService(svc)
	ctx := context.Background()

	ok, err := s.DashboardAllowed(ctx, "Admin@Example.com ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DashboardAllowed(ctx, "stranger@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
