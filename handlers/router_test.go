package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"casedesk-backend/metrics"
	"casedesk-backend/models"
	"casedesk-backend/notification"
	"casedesk-backend/repository"
	"casedesk-backend/service"
	"casedesk-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testAdminEmail = "admin@example.com"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testApp struct {
	t       *testing.T
	router  *gin.Engine
	store   *repository.Store
	clock   *testClock
	root    string
	logs    *observer.ObservedLogs
	metrics *metrics.Metrics
}

func newTestApp(t *testing.T, authOpts ...service.AuthServiceOption) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore()
	clk := &testClock{t: time.Now().UTC()}
	root := t.TempDir()
	local, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	m := metrics.New()
	notifier := notification.NewLogNotifier(log.Named("notify"))

	issuer := service.NewTokenIssuer("test-secret", "LMS Backend", time.Hour, 24*time.Hour, clk.Now)
	auth := service.NewAuthService(append([]service.AuthServiceOption{
		service.WithAuthStore(store),
		service.WithTokenIssuer(issuer),
		service.WithDefaultAdminEmail(testAdminEmail),
		service.WithAuthMetrics(m),
		service.WithAuthClock(clk.Now),
	}, authOpts...)...)

	router := NewRouter(Services{
		Auth: auth,
		Profiles: service.NewProfileService(
			service.WithProfileRepository(store.Profiles),
			service.WithAlertSettingsRepository(store.Alerts),
		),
		Disputes: service.NewDisputeService(
			service.WithDisputeRepository(store.Disputes),
			service.WithDisputeNotifier(notifier),
			service.WithDisputeMetrics(m),
		),
		Litigation: service.NewLitigationService(
			service.WithLitigationRepository(store.Litigation),
			service.WithLitigationNotifier(notifier),
			service.WithLitigationMetrics(m),
		),
		Admin: service.NewAdminService(service.WithAdminStore(store)),
		Files: service.NewFileService(
			service.WithStorage(local),
			service.WithFileDisputeRepository(store.Disputes),
			service.WithFileMetrics(m),
		),
		Courses: service.NewCourseService(service.WithCourseRepository(store.Courses)),
	}, RouterConfig{
		Logger:              log,
		Metrics:             m,
		AuthRateLimitPerSec: 1000,
		AuthRateLimitBurst:  1000,
	})

	return &testApp{t: t, router: router, store: store, clock: clk, root: root, logs: logs, metrics: m}
}

func (a *testApp) request(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(a.t, err)
			raw = string(b)
		}
		r = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) upload(path, token string, files map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(a.t, err)
		_, err = part.Write([]byte(content))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signUp(email, password, name string) models.TokenPair {
	a.t.Helper()
	rec := a.request(http.MethodPost, "/auth/sign-up", "", gin.H{"email": email, "password": password, "full_name": name})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.TokenPair](a.t, rec)
}

func (a *testApp) userID(token string) string {
	a.t.Helper()
	rec := a.request(http.MethodGet, "/me/profile", token, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.Profile](a.t, rec).UserID
}

func (a *testApp) grant(adminToken, userID string, perms ...string) {
	a.t.Helper()
	if perms == nil {
		perms = []string{}
	}
	rec := a.request(http.MethodPost, "/admin/permissions", adminToken, gin.H{"user_id": userID, "permissions": perms})
	require.Equal(a.t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Fields map[string]string `json:"fields"`
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) errorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	e := decode[errorResponse](t, rec)
	require.False(t, e.Success)
	if message != "" {
		require.Equal(t, message, e.Error.Message)
	}
	return e
}
