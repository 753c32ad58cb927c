package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grpaccess/backend/internal/docstore"
	"github.com/grpaccess/backend/internal/metrics"
	"github.com/grpaccess/backend/internal/notify"
	"github.com/grpaccess/backend/internal/service"
)

type recordingNotifier struct {
	payloads []notify.ContactPayload
	result   notify.Result
}

func (n *recordingNotifier) SendContactNotification(ctx context.Context, p notify.ContactPayload) notify.Result {
	n.payloads = append(n.payloads, p)
	return n.result
}

type testServer struct {
	handler  http.Handler
	store    *docstore.MemoryStore
	notifier *recordingNotifier
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	metrics.Register()

	store := docstore.NewMemoryStore()
	notifier := &recordingNotifier{result: notify.Result{Sent: false, Reason: notify.ReasonNotConfigured}}

	rt := Routes{
		Prefix:  "/api",
		Root:    New(store, []string{"*"}),
		Status:  NewStatusHandler(service.NewStatusService(store)),
		Contact: NewContactHandler(service.NewContactService(store, notifier)),
	}
	if rateLimit > 0 {
		rt.ContactLimiter = NewRateLimiter(rateLimit)
		t.Cleanup(rt.ContactLimiter.Close)
	}
	return &testServer{handler: NewRouter(rt), store: store, notifier: notifier}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Root(t *testing.T) {
	srv := newTestServer(t, 0)

	for _, path := range []string{"/api/", "/api"} {
		rec := srv.do(http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		var resp map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		if resp["message"] != "Hello World" {
			t.Errorf("%s: unexpected body %v", path, resp)
		}
	}
}

func TestRouter_StatusRoundTrip(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodPost, "/api/status", `{"client_name":"ci-probe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d body: %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&created)

	rec = srv.do(http.MethodGet, "/api/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 status check, got %d", len(list))
	}
	if list[0]["id"] != created["id"] || list[0]["client_name"] != "ci-probe" {
		t.Errorf("listed record %v does not match created %v", list[0], created)
	}
	if _, ok := list[0]["_id"]; ok {
		t.Error("internal _id must not be exposed")
	}
}

func TestRouter_ContactInvalidEmailNotPersisted(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodPost, "/api/contact", `{"name":"Bob","email":"not-an-email","message":"Hi"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(srv.notifier.payloads) != 0 {
		t.Error("notifier must not be called for invalid input")
	}

	rec = srv.do(http.MethodGet, "/api/contact", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected no stored submissions, got %s", got)
	}
}

func TestRouter_ContactSavedWithoutEmailConfigured(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodPost, "/api/contact", `{"name":"Alice","email":"alice@example.com","message":"Hello!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body: %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&created)
	if created["status"] != "new" {
		t.Errorf("expected status=new, got %v", created["status"])
	}
	if created["phone"] != nil {
		t.Errorf("expected phone=null, got %v", created["phone"])
	}
	if len(srv.notifier.payloads) != 1 {
		t.Fatalf("expected one notification attempt, got %d", len(srv.notifier.payloads))
	}
	if srv.notifier.payloads[0].Email != "alice@example.com" {
		t.Errorf("unexpected payload %+v", srv.notifier.payloads[0])
	}

	rec = srv.do(http.MethodGet, "/api/contact", "")
	var list []map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0]["id"] != created["id"] {
		t.Errorf("expected the submission to be listed, got %v", list)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodDelete, "/api/status", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, 0)

	if rec := srv.do(http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}

	srv.do(http.MethodPost, "/api/status", `{"client_name":"metrics-probe"}`)
	rec := srv.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "grpaccess_status_checks_total") {
		t.Error("expected status check counter in metrics output")
	}
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	srv := newTestServer(t, 0)

	rec := srv.do(http.MethodGet, "/api/", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on API responses")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on API responses")
	}
}

func TestRouter_ContactRateLimited(t *testing.T) {
	srv := newTestServer(t, 2)

	body := `{"name":"Alice","email":"alice@example.com","message":"Hello!"}`
	for i := 0; i < 2; i++ {
		if rec := srv.do(http.MethodPost, "/api/contact", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := srv.do(http.MethodPost, "/api/contact", body); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	// Listing is not throttled.
	if rec := srv.do(http.MethodGet, "/api/contact", ""); rec.Code != http.StatusOK {
		t.Errorf("list: expected 200, got %d", rec.Code)
	}
}
