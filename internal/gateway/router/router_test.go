package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketgate/internal/identity"
	"ticketgate/internal/observability/logging"
	"ticketgate/internal/observability/metrics"
	"ticketgate/internal/ticket"
	"ticketgate/internal/ticketauth"
)

// scriptedFactory returns clients whose validation outcome is fixed.
type scriptedFactory struct {
	valid bool
}

type scriptedClient struct {
	tkt   *ticket.Ticket
	valid bool
}

func (f *scriptedFactory) Client(t *ticket.Ticket) identity.Client {
	return &scriptedClient{tkt: t, valid: f.valid}
}

func (c *scriptedClient) Ticket() *ticket.Ticket {
	return c.tkt
}

func (c *scriptedClient) ValidateTicket(ctx context.Context) (bool, error) {
	if c.tkt == nil {
		return false, nil
	}
	return c.valid, nil
}

func (c *scriptedClient) ExchangeToken(ctx context.Context, oneTimeToken string, app identity.App) (ticket.Ticket, error) {
	return ticket.Ticket{Value: "T-" + oneTimeToken}, nil
}

func newTestRouter(t *testing.T, factory identity.ClientFactory, rules []Rule) (*Router, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("upstream:" + r.URL.Path))
	}))
	t.Cleanup(upstream.Close)

	upstreamURL, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	collector := metrics.NewCollector()

	auth, err := ticketauth.New(ticketauth.Options{
		App:      identity.App{ID: "myAppId", Key: "myAppKey"},
		LoginURL: "https://login.example.com/auth",
	}, factory, logger, collector)
	require.NoError(t, err)

	r := New(Config{
		UpstreamURL: upstreamURL,
		Rules:       rules,
	}, auth, logger, collector)
	return r, upstream
}

func TestPublicRouteProxiesWithoutSession(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, []Rule{
		{Name: "health", Action: "public", Paths: []string{"/healthz"}},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upstream:/healthz", w.Body.String())
}

func TestProtectedRouteWithoutTicketRedirects(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, []Rule{
		{Name: "app", Action: "protected", Paths: []string{"/app"}, MatchPrefix: true},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app/page", nil))

	assert.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "login.example.com", loc.Host)
	assert.Equal(t, "/app/page", loc.Query().Get("next"))
}

func TestProtectedRouteWithValidTicketProxies(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{valid: true}, []Rule{
		{Name: "app", Action: "protected", Paths: []string{"/app"}, MatchPrefix: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/app/page", nil)
	req.AddCookie(&http.Cookie{Name: ticket.DefaultCookieName, Value: "T1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upstream:/app/page", w.Body.String())
}

func TestUnmatchedRouteFailsClosed(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "login.example.com")
}

func TestUnknownActionTreatedAsProtected(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, []Rule{
		{Name: "odd", Action: "allow", Paths: []string{"/odd"}},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/odd", nil))

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestCallbackMountedOnRouter(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultCallbackPath+"?token=abc123&next=/app", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/app", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "T-abc123", cookies[0].Value)
}

func TestLogoutMountedOnRouter(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultLogoutPath, nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRuleMethodRestriction(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedFactory{}, []Rule{
		{Name: "webhook", Action: "public", Paths: []string{"/hook"}, Methods: []string{http.MethodPost}},
	})

	// POST matches the public rule.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hook", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// GET falls through to the protected default.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hook", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
