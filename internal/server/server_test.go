package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clamood/console/internal/config"
	"clamood/console/internal/gateway"
	"clamood/console/internal/handlers"
	"clamood/console/internal/middleware"
	"clamood/console/internal/models"
	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/service"
	"clamood/console/internal/session"
)

type fakeAPI struct {
	mu     sync.Mutex
	hits   map[string]int
	routes map[string]http.HandlerFunc
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	f.mu.Lock()
	f.hits[key]++
	fn, ok := f.routes[key]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	fn(w, r)
}

func (f *fakeAPI) handle(key string, fn http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = fn
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

type console struct {
	api      *fakeAPI
	handler  http.Handler
	sessions *session.Manager
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeAPI{hits: map[string]int{}, routes: map[string]http.HandlerFunc{}}
	apiServer := httptest.NewServer(api)
	t.Cleanup(apiServer.Close)

	cfg := &config.AppConfig{
		Environment: "test",
		API:         config.APIConfig{BaseURL: apiServer.URL + "/api", Timeout: 5 * time.Second},
	}
	log := zerolog.Nop()

	store := session.NewMemoryStore()
	sessions := session.NewManager(store, log)
	notices := notice.NewCenter(0, log)
	cache := query.New(query.Options{StaleTime: time.Hour}, log)
	t.Cleanup(cache.Close)
	sessions.OnChange(func(session.Session) { cache.Reset() })

	client, err := gateway.New(gateway.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, sessions, notices, middleware.NewNavigator(log), log)
	require.NoError(t, err)

	services := service.NewSet(client, sessions, cache, notices, nil, log)
	set := handlers.NewHandlerSet(log, cfg, services, sessions, store, notices, cache)
	srv := NewHTTPServer(cfg, log, set, sessions, notices)

	return &console{api: api, handler: srv.Handler(), sessions: sessions}
}

func (c *console) login(t *testing.T, adminType models.AdminType) {
	t.Helper()
	require.NoError(t, c.sessions.Set(context.Background(), "tok", models.UserProfile{
		ID:        1,
		Username:  "admin",
		AdminType: adminType,
		Branch:    &models.Branch{ID: 3, Name: "Gangnam"},
	}))
}

func (c *console) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

type view struct {
	Path     string          `json:"path"`
	Operator string          `json:"operator"`
	Menu     []guardItem     `json:"menu"`
	Notices  []notice.Notice `json:"notices"`
	Data     json.RawMessage `json:"data"`
}

type guardItem struct {
	Path string `json:"path"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func noticeTexts(ns []notice.Notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Message)
	}
	return out
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

const (
	memberPage  = `{"count":1,"next":null,"previous":null,"results":[{"id":5,"name":"Lee","branch":3}]}`
	memberStats = `{"total_members":1,"active_members":1,"expired_members":0,"gender_distribution":[],"monthly_registrations":0}`
	branchPage  = `{"count":1,"next":null,"previous":null,"results":[{"id":3,"name":"Gangnam"}]}`
)

func (c *console) serveMembers() {
	c.api.handle("GET /members/members/", reply(http.StatusOK, memberPage))
	c.api.handle("GET /members/members/stats/", reply(http.StatusOK, memberStats))
	c.api.handle("GET /branches/branches/", reply(http.StatusOK, branchPage))
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	c := newConsole(t)

	rec := c.do(http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, c.api.count("GET /members/members/"))
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	c := newConsole(t)

	rec := c.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginPageWhileAuthenticatedRedirectsHome(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)

	rec := c.do(http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	c := newConsole(t)
	c.serveMembers()
	c.api.handle("POST /auth/login/", reply(http.StatusOK,
		`{"token":"abc","user_id":9,"username":"hq","email":"hq@example.com","admin_type":"headquarters","branch_id":null,"branch_name":""}`))

	rec := c.do(http.MethodPost, "/login", `{"username":"hq","password":"pw"}`)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/", rec.Header().Get("Location"))

	s := c.sessions.Get()
	require.True(t, s.IsAuthenticated())
	assert.Nil(t, s.Branch())

	rec = c.do(http.MethodGet, "/members", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[view](t, rec)
	assert.Equal(t, []string{service.MsgLoggedIn}, noticeTexts(page.Notices))
	assert.Equal(t, "Headquarters admin", page.Operator)
	require.Len(t, page.Menu, 8)
	assert.Equal(t, "/analytics", page.Menu[5].Path)

	rec = c.do(http.MethodGet, "/notices", "")
	assert.JSONEq(t, `{"notices":[]}`, rec.Body.String(), "notices are shown once")
}

func TestLoginRequiresFields(t *testing.T) {
	c := newConsole(t)

	rec := c.do(http.MethodPost, "/login", `{"username":"hq"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"password":["This field is required."]}}`, rec.Body.String())
}

func TestLoginRejected(t *testing.T) {
	c := newConsole(t)
	c.api.handle("POST /auth/login/", reply(http.StatusBadRequest, `{"non_field_errors":["Unable to log in."]}`))

	rec := c.do(http.MethodPost, "/login", `{"username":"hq","password":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"non_field_errors":["Unable to log in."]}}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/notices", "")
	got := decode[struct{ Notices []notice.Notice }](t, rec)
	assert.Equal(t, []string{service.MsgLoginFailed}, noticeTexts(got.Notices))
}

func TestMemberCreateRefetchesList(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.serveMembers()
	c.api.handle("POST /members/members/", reply(http.StatusCreated, `{"id":6,"name":"Park","branch":3}`))

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/members", "").Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/members", "").Code)
	require.Equal(t, 1, c.api.count("GET /members/members/"))

	rec := c.do(http.MethodPost, "/members", `{"name":"Park","phone":"010","branch":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[view](t, rec)
	assert.Equal(t, []string{service.MsgMemberCreated}, noticeTexts(page.Notices))

	assert.Equal(t, 2, c.api.count("GET /members/members/"))
	assert.Equal(t, 2, c.api.count("GET /members/members/stats/"))
	assert.Equal(t, 1, c.api.count("GET /branches/branches/"))
}

func TestMemberValidationRendersFieldErrors(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.api.handle("PUT /members/members/5/", reply(http.StatusBadRequest, `{"phone":"This field may not be blank."}`))

	rec := c.do(http.MethodPut, "/members/5", `{"name":"Lee","phone":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"phone":["This field may not be blank."]}}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/notices", "")
	assert.JSONEq(t, `{"notices":[]}`, rec.Body.String())
}

func TestMemberBadID(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)

	rec := c.do(http.MethodDelete, "/members/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, c.api.count("DELETE /members/members/abc/"))
}

func TestUnauthorizedResponseSendsOperatorToLogin(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.api.handle("GET /members/members/", reply(http.StatusUnauthorized, `{"detail":"Invalid token."}`))

	rec := c.do(http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, c.sessions.IsAuthenticated())

	rec = c.do(http.MethodGet, "/login", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[view](t, rec)
	assert.Equal(t, []string{gateway.MsgLoginRequired}, noticeTexts(page.Notices))
	assert.Empty(t, page.Menu)
}

func TestUnauthorizedForReplacedLoginKeepsNewSession(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.api.handle("DELETE /members/members/5/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, c.sessions.Set(context.Background(), "tok2", models.UserProfile{ID: 1, Username: "admin"}))
		reply(http.StatusUnauthorized, `{"detail":"Invalid token."}`)(w, r)
	})

	rec := c.do(http.MethodDelete, "/members/5", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Equal(t, "tok2", c.sessions.Token())

	rec = c.do(http.MethodGet, "/notices", "")
	got := decode[struct{ Notices []notice.Notice }](t, rec)
	assert.Equal(t, []string{gateway.MsgLoginChanged}, noticeTexts(got.Notices))
}

func TestServerErrorKeepsOperatorOnPage(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.api.handle("GET /trainers/trainers/", reply(http.StatusInternalServerError, `{}`))

	rec := c.do(http.MethodGet, "/trainers", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, c.sessions.IsAuthenticated())

	rec = c.do(http.MethodGet, "/notices", "")
	got := decode[struct{ Notices []notice.Notice }](t, rec)
	assert.Equal(t, []string{gateway.MsgServer}, noticeTexts(got.Notices))
}

func TestBranchOperatorMenuAndDashboardScope(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)

	var gotBranch string
	c.api.handle("GET /dashboards/overview/", func(w http.ResponseWriter, r *http.Request) {
		gotBranch = r.URL.Query().Get("branch_id")
		reply(http.StatusOK, `{"total_members":3}`)(w, r)
	})
	c.api.handle("GET /dashboards/revenue-chart/", reply(http.StatusOK, `{"period":"monthly","data":[]}`))

	rec := c.do(http.MethodGet, "/?branch=99", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "3", gotBranch)

	page := decode[view](t, rec)
	assert.Equal(t, "Gangnam branch admin", page.Operator)
	assert.Len(t, page.Menu, 7)
}

func TestExportStreamsCSVWithoutStorage(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeHeadquarters)
	c.serveMembers()

	rec := c.do(http.MethodPost, "/members/export?membership_status=active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	assert.Contains(t, rec.Body.String(), "5,Lee,")
}

func TestLogout(t *testing.T) {
	c := newConsole(t)
	c.login(t, models.AdminTypeBranch)
	c.api.handle("POST /auth/logout/", reply(http.StatusNoContent, ""))

	rec := c.do(http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, c.sessions.IsAuthenticated())
	assert.Equal(t, 1, c.api.count("POST /auth/logout/"))
}

func TestHealth(t *testing.T) {
	c := newConsole(t)

	rec := c.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","session":"ok","authenticated":false,"cacheEntries":0,"environment":"test"}`, rec.Body.String())
}
