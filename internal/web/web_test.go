package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/analytics"
	"github.com/Kaushik9989/portfolio/internal/content"
	"github.com/Kaushik9989/portfolio/internal/export"
	"github.com/Kaushik9989/portfolio/internal/mail"
	"github.com/Kaushik9989/portfolio/internal/render"
	"github.com/Kaushik9989/portfolio/internal/viewport"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) SendContact(_ context.Context, m mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type pdfStub struct{}

func (pdfStub) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

type testEnv struct {
	engine *gin.Engine
	wait   func()
	store  *analytics.Store
	mailer *fakeMailer
}

func newEnv(t *testing.T, mutate func(*Options)) *testEnv {
	t.Helper()
	store, err := analytics.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	renderer, err := render.New(content.Default(), render.WithContactForm(true))
	require.NoError(t, err)
	hasher, err := analytics.NewHasher("test-salt")
	require.NoError(t, err)
	mailer := &fakeMailer{}

	opts := Options{
		Logger:           zap.NewNop(),
		Renderer:         renderer,
		Store:            store,
		Hasher:           hasher,
		Mailer:           mailer,
		ContactPerMinute: 2,
		RetentionMonths:  12,
		TrackVisits:      true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	engine, wait, err := NewRouter(opts)
	require.NoError(t, err)
	return &testEnv{engine: engine, wait: wait, store: store, mailer: mailer}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (e *testEnv) stats(t *testing.T) *analytics.Stats {
	t.Helper()
	e.wait()
	s, err := e.store.Stats(context.Background())
	require.NoError(t, err)
	return s
}

func TestIndexRendersPortfolio(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	for _, id := range viewport.DefaultSections() {
		assert.Equal(t, 1, doc.Find("section#"+id).Length(), id)
	}
	assert.Equal(t, 1, doc.Find("form[data-contact-form]").Length())
}

func TestRequestID(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.get("/healthz")
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	assert.Equal(t, id, e.do(req).Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", e.do(req).Header().Get(requestIDHeader))
}

func TestSectionFragment(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.get("/sections/projects")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="projects"`)
	assert.NotContains(t, rec.Body.String(), "<html")

	assert.Equal(t, http.StatusNotFound, e.get("/sections/footer").Code)
}

func TestPrintView(t *testing.T) {
	e := newEnv(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/print", nil)
	req.Host = "attacker.example"
	rec := e.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.True(t, doc.Find("body").HasClass("print"))
	assert.Equal(t, "/", doc.Find("base").AttrOr("href", ""))
	assert.NotContains(t, rec.Body.String(), "attacker.example")
}

func TestPrintViewUsesBaseURL(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.BaseURL = "https://vivek.example/" })
	req := httptest.NewRequest(http.MethodGet, "/print", nil)
	req.Host = "attacker.example"
	rec := e.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "https://vivek.example/", doc.Find("base").AttrOr("href", ""))
}

func TestViewportConfigAPI(t *testing.T) {
	e := newEnv(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/viewport", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := e.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var got struct {
		Sections    []string `json:"sections"`
		CopyResetMs int64    `json:"copyResetMs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, viewport.DefaultSections(), got.Sections)
	assert.Equal(t, int64(1200), got.CopyResetMs)
}

func TestCORSRestrictedOrigins(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.CORSOrigins = []string{"https://ok.example"} })

	req := httptest.NewRequest(http.MethodGet, "/api/viewport", nil)
	req.Header.Set("Origin", "https://ok.example")
	assert.Equal(t, "https://ok.example", e.do(req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/viewport", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, e.do(req).Code)
}

func TestCopyEvents(t *testing.T) {
	e := newEnv(t, nil)

	assert.Equal(t, http.StatusNoContent, e.do(postJSON("/api/events/copy", `{"label":"email"}`)).Code)
	assert.Equal(t, http.StatusNoContent, e.do(postJSON("/api/events/copy", `{"label":"phone"}`)).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(postJSON("/api/events/copy", `{"label":"password"}`)).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(postJSON("/api/events/copy", `not json`)).Code)

	dnt := postJSON("/api/events/copy", `{"label":"email"}`)
	dnt.Header.Set("DNT", "1")
	assert.Equal(t, http.StatusNoContent, e.do(dnt).Code)

	s := e.stats(t)
	assert.Equal(t, int64(2), s.TotalCopies)
	assert.ElementsMatch(t, []analytics.LabelCount{{Label: "email", Count: 1}, {Label: "phone", Count: 1}}, s.Copies)
}

func TestCopyEventsSameOriginByDefault(t *testing.T) {
	e := newEnv(t, nil)

	cross := postJSON("/api/events/copy", `{"label":"email"}`)
	cross.Header.Set("Origin", "https://elsewhere.example")
	assert.Equal(t, http.StatusForbidden, e.do(cross).Code)

	same := postJSON("/api/events/copy", `{"label":"email"}`)
	same.Header.Set("Origin", "http://example.com")
	assert.Equal(t, http.StatusNoContent, e.do(same).Code)

	assert.Equal(t, int64(1), e.stats(t).TotalCopies)
}

func TestCopyEventsWildcardStaysSameOrigin(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.CORSOrigins = []string{"*"} })

	cross := postJSON("/api/events/copy", `{"label":"phone"}`)
	cross.Header.Set("Origin", "https://elsewhere.example")
	assert.Equal(t, http.StatusForbidden, e.do(cross).Code)

	// the read-only config stays open to everyone
	req := httptest.NewRequest(http.MethodGet, "/api/viewport", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	assert.Equal(t, http.StatusOK, e.do(req).Code)

	assert.Zero(t, e.stats(t).TotalCopies)
}

func TestCopyEventsListedOrigin(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.CORSOrigins = []string{"https://ok.example"} })

	req := postJSON("/api/events/copy", `{"label":"email"}`)
	req.Header.Set("Origin", "https://ok.example")
	rec := e.do(req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://ok.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = postJSON("/api/events/copy", `{"label":"email"}`)
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, e.do(req).Code)
}

func TestVisitorTracking(t *testing.T) {
	e := newEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "test-agent")
	e.do(req)
	e.get("/sections/skills")

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	e.do(dnt)
	e.get("/privacy")
	e.get("/healthz")
	e.get("/no-such-page")
	e.do(postJSON("/api/events/copy", `{"label":"email"}`))

	s := e.stats(t)
	require.Equal(t, int64(2), s.TotalVisitors)
	assert.Equal(t, int64(1), s.UniqueVisitors)

	var paths []string
	for _, v := range s.RecentVisitors {
		paths = append(paths, v.Path)
		assert.Len(t, v.HashedIP, 16)
		assert.NotContains(t, v.HashedIP, "192.0.2.1")
	}
	assert.ElementsMatch(t, []string{"/", "/sections/skills"}, paths)
}

func TestTrackingDisabled(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.TrackVisits = false })
	e.get("/")
	assert.Zero(t, e.stats(t).TotalVisitors)
}

func TestPrivacyPage(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.RetentionMonths = 6 })
	rec := e.get("/privacy")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "older than 6 months")
}

func TestHealthz(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.NoError(t, e.store.Close())
	assert.Equal(t, http.StatusServiceUnavailable, e.get("/healthz").Code)
}

func contactForm(name, email, message string) url.Values {
	return url.Values{"fullName": {name}, "email": {email}, "message": {message}}
}

func TestContactSuccess(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(postForm("/contact", contactForm("Ada", "ada@example.com", "Hello there")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your message")
	require.Len(t, e.mailer.sent, 1)
	assert.Equal(t, mail.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello there"}, e.mailer.sent[0])
}

func TestContactInvalid(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(postForm("/contact", contactForm("Ada", "nope", "Hello")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid email")
	assert.Empty(t, e.mailer.sent)
}

func TestContactRateLimited(t *testing.T) {
	e := newEnv(t, nil)
	form := contactForm("Ada", "ada@example.com", "Hello")

	assert.Equal(t, http.StatusOK, e.do(postForm("/contact", form)).Code)
	assert.Equal(t, http.StatusOK, e.do(postForm("/contact", form)).Code)
	rec := e.do(postForm("/contact", form))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "try again")
	assert.Len(t, e.mailer.sent, 2)
}

func TestContactDeliveryFailure(t *testing.T) {
	e := newEnv(t, nil)
	e.mailer.err = errors.New("smtp down")

	rec := e.do(postForm("/contact", contactForm("Ada", "ada@example.com", "Hello")))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error sending your message")

	e.mailer.err = mail.NewDisabledSender("").SendContact(context.Background(), mail.Message{})
	rec = e.do(postForm("/contact", contactForm("Ada", "ada@example.com", "Hello")))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOptionalRoutesUnmounted(t *testing.T) {
	e := newEnv(t, func(o *Options) { o.Mailer = nil })

	assert.Equal(t, http.StatusNotFound, e.do(postForm("/contact", contactForm("Ada", "ada@example.com", "Hi"))).Code)
	assert.Equal(t, http.StatusNotFound, e.get("/resume.pdf").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/admin/login").Code)
}

func TestResumePDF(t *testing.T) {
	e := newEnv(t, func(o *Options) {
		o.Resume = export.NewResume(pdfStub{}, func() (string, error) { return "<html></html>", nil }, zap.NewNop())
	})
	rec := e.get("/resume.pdf")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func adminEnv(t *testing.T) *testEnv {
	return newEnv(t, func(o *Options) {
		o.Admin = AdminCredentials{Username: "vivek", Password: "pw", Token: "tok-123"}
		o.Retention = retentionFor(t, o.Store)
	})
}

func retentionFor(t *testing.T, s Store) Cleaner {
	t.Helper()
	r, err := analytics.NewRetention("@every 1h", s.(analytics.Cleaner), 12, zap.NewNop())
	require.NoError(t, err)
	return r
}

func login(t *testing.T, e *testEnv, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(postForm("/admin/login", url.Values{"username": {user}, "password": {pass}}))
}

func withAdminCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "tok-123"})
	return req
}

func TestAdminLogin(t *testing.T) {
	e := adminEnv(t)

	assert.Equal(t, http.StatusOK, e.get("/admin/login").Code)

	rec := login(t, e, "vivek", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	rec = login(t, e, "vivek", "pw")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookie, cookies[0].Name)
	assert.Equal(t, "tok-123", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminLoginThrottled(t *testing.T) {
	e := adminEnv(t)
	for i := 0; i < 5; i++ {
		login(t, e, "vivek", "wrong")
	}
	assert.Equal(t, http.StatusTooManyRequests, login(t, e, "vivek", "pw").Code)
}

func TestAdminRequiresCookie(t *testing.T) {
	e := adminEnv(t)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/visitors", "/admin/api/visitors/1", "/admin/export/stats"} {
		rec := e.get(path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, e.do(req).Code)
}

func TestAdminPages(t *testing.T) {
	e := adminEnv(t)
	e.get("/")
	e.do(postJSON("/api/events/copy", `{"label":"email"}`))
	e.wait()

	rec := e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(doc.Find(".stat-value").First().Text()))
	assert.Contains(t, doc.Find(".admin-table").First().Text(), "email")

	rec = e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<td>/</td>")

	rec = e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	var s analytics.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, int64(1), s.TotalVisitors)
	assert.Equal(t, int64(1), s.TotalCopies)

	rec = e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/export/stats", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=admin-stats.json", rec.Header().Get("Content-Disposition"))
}

func TestAdminVisitLookup(t *testing.T) {
	e := adminEnv(t)
	e.get("/")
	e.wait()
	recent, err := e.store.RecentVisitors(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	rec := e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/api/visitors/%d", recent[0].ID), nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	var v analytics.Visit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, recent[0].ID, v.ID)
	assert.Equal(t, "/", v.Path)

	rec = e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/api/visitors/999", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/api/visitors/abc", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCleanup(t *testing.T) {
	e := adminEnv(t)
	ctx := context.Background()
	require.NoError(t, e.store.RecordVisit(ctx, analytics.Visit{HashedIP: "old", Timestamp: time.Now().AddDate(-2, 0, 0)}))
	require.NoError(t, e.store.RecordVisit(ctx, analytics.Visit{HashedIP: "new"}))

	rec := e.do(withAdminCookie(httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":1}`, rec.Body.String())
	assert.Equal(t, int64(1), e.stats(t).TotalVisitors)
}

func TestAdminLogout(t *testing.T) {
	e := adminEnv(t)
	rec := e.do(withAdminCookie(httptest.NewRequest(http.MethodGet, "/admin/logout", nil)))

	assert.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.True(t, l.allow("b"), "keys are independent")

	now = now.Add(30 * time.Second)
	assert.True(t, l.allow("a"), "one token refills every 30s")
	assert.False(t, l.allow("a"))
}

func TestLimiterSweepsIdleKeys(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(1)
	l.now = func() time.Time { return now }
	for i := 0; i < limiterSweepAt; i++ {
		l.allow(uuid.NewString())
	}
	now = now.Add(time.Hour)
	l.allow("fresh")
	assert.Len(t, l.entries, 1)
}

func TestServerShutsDownOnCancel(t *testing.T) {
	e := newEnv(t, nil)
	var drained bool
	srv := NewServer("127.0.0.1:0", e.engine, func() { drained = true }, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, drained)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
