package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quay/internal/auth"
	"quay/internal/domain"
	"quay/internal/httpserver"
	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/mw"
	"quay/internal/logger"
	"quay/internal/nav"
	"quay/internal/store/memkv"
	"quay/internal/web"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	kv := memkv.New()
	log := logger.NewNop()
	renderer, err := web.New()
	require.NoError(t, err)

	d := deps.Deps{
		Logger:            log,
		StartTime:         time.Now(),
		Version:           "test",
		Auth:              auth.NewService(kv, log),
		Nav:               nav.NewService(kv, log),
		Renderer:          renderer,
		CookieMaxAge:      time.Hour,
		LoginBurst:        1000, // out of the way for functional tests
		LoginRefillPerMin: 1000,
		BackupTrigger:     make(chan struct{}, 1),
	}
	return httpserver.Router(nil, log, d)
}

func doLogin(t *testing.T, router http.Handler, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == mw.SessionCookieName {
			return rec, c
		}
	}
	return rec, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Success, res.Message
}

func TestHomePageFallbacks(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "root", method: http.MethodGet, path: "/"},
		{name: "unmatched path", method: http.MethodGet, path: "/no/such/page"},
		{name: "wrong verb on known path", method: http.MethodPost, path: "/data"},
		{name: "delete verb", method: http.MethodDelete, path: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
		})
	}
}

func TestDataEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	var data domain.Data
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Empty(t, data.Categories)
	assert.Empty(t, data.Sites)
}

func TestLoginBootstrapAndFailure(t *testing.T) {
	router := newTestRouter(t)

	rec, cookie := doLogin(t, router, "abc123")
	success, _ := decodeEnvelope(t, rec)
	assert.True(t, success, "first login bootstraps the password")
	require.NotNil(t, cookie)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	rec, cookie = doLogin(t, router, "wrong")
	success, message := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code, "auth failures are reported inside the envelope")
	assert.False(t, success)
	assert.Equal(t, "incorrect password", message)
	assert.Nil(t, cookie, "no cookie on failed login")

	rec, _ = doLogin(t, router, "abc123")
	success, _ = decodeEnvelope(t, rec)
	assert.True(t, success, "bootstrap password still valid")
}

func TestAdminPageVariants(t *testing.T) {
	router := newTestRouter(t)

	// Unauthenticated: login form, no refreshed cookie.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "/admin/auth")
	assert.NotContains(t, rec.Body.String(), "/admin/save")
	assert.Empty(t, rec.Result().Cookies())

	_, cookie := doLogin(t, router, "pw")
	require.NotNil(t, cookie)

	// Authenticated: console plus a re-issued cookie with fresh Max-Age.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "/admin/save")

	var refreshed *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == mw.SessionCookieName {
			refreshed = c
		}
	}
	require.NotNil(t, refreshed)
	assert.Equal(t, cookie.Value, refreshed.Value)
	assert.Equal(t, 3600, refreshed.MaxAge)

	// A stale token gets the login form again.
	req = httptest.NewRequest(http.MethodGet, "/admin/anything", nil)
	req.AddCookie(&http.Cookie{Name: mw.SessionCookieName, Value: "stale"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "/admin/auth")
}

func TestSaveRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	body := `{"categories":["Work"],"sites":[]}`

	req := httptest.NewRequest(http.MethodPost, "/admin/save", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	success, message := decodeEnvelope(t, rec)
	assert.False(t, success)
	assert.Equal(t, "not authenticated", message)

	// Data unchanged.
	req = httptest.NewRequest(http.MethodGet, "/data", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var data domain.Data
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Empty(t, data.Categories)
}

func TestSaveAndDataRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := doLogin(t, router, "pw")
	require.NotNil(t, cookie)

	payload := domain.Data{
		Categories: []string{"Work"},
		Sites: []domain.Site{
			{Name: "GitHub", URL: "https://github.com", Category: "Work", Icon: ""},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/save", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	success, _ := decodeEnvelope(t, rec)
	require.True(t, success)

	req = httptest.NewRequest(http.MethodGet, "/data", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var got domain.Data
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, payload, got)
}

func TestSaveMalformedBody(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := doLogin(t, router, "pw")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/admin/save", strings.NewReader("{broken"))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	success, message := decodeEnvelope(t, rec)
	assert.False(t, success)
	assert.Equal(t, "server error", message)
}

func TestChangePasswordFlow(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := doLogin(t, router, "old-pass")
	require.NotNil(t, cookie)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/change-password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"currentPassword":"nope","newPassword":"new-pass","confirmPassword":"new-pass"}`)
	success, message := decodeEnvelope(t, rec)
	assert.False(t, success)
	assert.Equal(t, "current password incorrect", message)

	rec = post(`{"currentPassword":"old-pass","newPassword":"new-pass","confirmPassword":"other"}`)
	success, message = decodeEnvelope(t, rec)
	assert.False(t, success)
	assert.Equal(t, "passwords do not match", message)

	rec = post(`{"currentPassword":"old-pass","newPassword":"new-pass","confirmPassword":"new-pass"}`)
	success, _ = decodeEnvelope(t, rec)
	assert.True(t, success)

	// Old password is gone, new one works; the session survived.
	rec2, _ := doLogin(t, router, "old-pass")
	success, _ = decodeEnvelope(t, rec2)
	assert.False(t, success)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req)
	assert.Contains(t, rec3.Body.String(), "/admin/save", "session stays valid after password change")
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := doLogin(t, router, "pw")
	require.NotNil(t, cookie)

	logout := func(withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
		if withCookie {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := logout(true)
	success, _ := decodeEnvelope(t, rec)
	assert.True(t, success)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == mw.SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0, "logout clears the cookie")

	// The old token no longer authenticates.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	page := httptest.NewRecorder()
	router.ServeHTTP(page, req)
	assert.Contains(t, page.Body.String(), "/admin/auth")

	// Logging out again, even with no session at all, still succeeds.
	rec = logout(false)
	success, _ = decodeEnvelope(t, rec)
	assert.True(t, success)
}

func TestSingleGlobalSession(t *testing.T) {
	router := newTestRouter(t)

	_, first := doLogin(t, router, "pw")
	require.NotNil(t, first)
	_, second := doLogin(t, router, "pw")
	require.NotNil(t, second)
	require.NotEqual(t, first.Value, second.Value)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(first)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "/admin/auth", "older session is invalidated")

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(second)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "/admin/save", "newest session wins")
}

func TestBackupTrigger(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := doLogin(t, router, "pw")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	success, message := decodeEnvelope(t, rec)
	assert.True(t, success)
	assert.Equal(t, "backup triggered", message)

	// The channel has capacity one and nothing draining it in this test, so
	// a second trigger reports a pending backup.
	req = httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	success, message = decodeEnvelope(t, rec)
	assert.False(t, success)
	assert.Equal(t, "backup already in progress", message)
}

func TestInfraEndpoints(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "memory backend is always ready")
}
