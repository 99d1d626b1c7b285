package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"casedesk-backend/models"
	"casedesk-backend/repository"

	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@example.com"

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Now().UTC()} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu       sync.Mutex
	disputes []string
	uploads  []int
}

func (n *recordingNotifier) DisputeCreated(_ context.Context, d *models.Dispute) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disputes = append(n.disputes, d.ID)
}

func (n *recordingNotifier) LitigationUploaded(_ context.Context, _ string, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.uploads = append(n.uploads, count)
}

type fixture struct {
	store *repository.Store
	clock *clock
	auth  *AuthService
}

func newFixture(t *testing.T, opts ...AuthServiceOption) *fixture {
	t.Helper()
	store := repository.NewStore()
	clk := newClock()
	issuer := NewTokenIssuer("test-secret", "LMS Backend", time.Hour, 24*time.Hour, clk.Now)
	base := []AuthServiceOption{
		WithAuthStore(store),
		WithTokenIssuer(issuer),
		WithDefaultAdminEmail(adminEmail),
		WithAuthClock(clk.Now),
	}
	return &fixture{
		store: store,
		clock: clk,
		auth:  NewAuthService(append(base, opts...)...),
	}
}

func (f *fixture) signUp(t *testing.T, email, password string) *AuthResult {
	t.Helper()
	res, err := f.auth.SignUp(context.Background(), SignUpRequest{Email: email, Password: password, FullName: "Name"})
	require.NoError(t, err)
	return res
}

func (f *fixture) user(t *testing.T, accessToken string) *models.User {
	t.Helper()
	ctx := context.Background()
	session, err := f.auth.ResolveSession(ctx, accessToken)
	require.NoError(t, err)
	u, err := f.auth.ResolveUser(ctx, session)
	require.NoError(t, err)
	return u
}
