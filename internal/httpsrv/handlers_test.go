package httpsrv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/contact/model"
	"github.com/supermega/opsd/internal/contact/service"
	"github.com/supermega/opsd/internal/integrations/gcal"
	"github.com/supermega/opsd/internal/integrations/mailer"
	"github.com/supermega/opsd/internal/integrations/slackhook"
)

type inlineQueue struct{ names []string }

func (q *inlineQueue) Submit(name string, run func(ctx context.Context) error) error {
	q.names = append(q.names, name)
	_ = run(context.Background())
	return nil
}

type nopSheets struct{}

func (nopSheets) AppendRow(context.Context, []string, []any) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Post(context.Context, *slackhook.Message) error { return nil }

type nopCalendar struct{}

func (nopCalendar) CreateStrategyCall(context.Context, string, string, int) (*gcal.EventResult, error) {
	return &gcal.EventResult{EventID: "evt-1"}, nil
}

func testHandler(t *testing.T, queue *inlineQueue) http.Handler {
	t.Helper()

	svc := service.NewContactService(&service.Opts{
		Queue:      queue,
		Sheets:     nopSheets{},
		Mail:       mailer.NewSender(&config.Config{}),
		Notifier:   nopNotifier{},
		Calendar:   nopCalendar{},
		BookingURL: "https://calendar.google.com/booking",
	})
	return InitHTTPHandlers(&HTTPHandlersOpts{
		Cfg:     &config.Config{},
		Service: svc,
	})
}

func TestRouting_ContactEndToEnd(t *testing.T) {
	queue := &inlineQueue{}
	h := testHandler(t, queue)

	body := `{"name":"Ann","email":"ann@x.com","scheduleCall":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp model.ContactResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ContactID)

	assert.Equal(t,
		[]string{"sheets-append", "confirmation-email", "team-notify", "calendar-link-email"},
		queue.names,
	)
}

func TestRouting_ContactRejectsGet(t *testing.T) {
	h := testHandler(t, &inlineQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouting_Health(t *testing.T) {
	h := testHandler(t, &inlineQueue{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestRouting_Healthz(t *testing.T) {
	h := testHandler(t, &inlineQueue{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouting_AuthUnconfigured(t *testing.T) {
	h := testHandler(t, &inlineQueue{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"credential":"tok"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouting_MetricsDisabledByDefault(t *testing.T) {
	h := testHandler(t, &inlineQueue{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
