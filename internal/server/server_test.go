package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keywatch/internal/config"
	"keywatch/internal/models"
	"keywatch/internal/store/memory"
	"keywatch/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	s := memory.New()
	srv := New(&config.Config{Env: "test", FrontendURL: "https://alerts.example.com"})
	srv.RegisterRoutes(s)
	return srv, s
}

func send(t *testing.T, srv *Server, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestKeywordScenario walks the create, duplicate, delete flow across both
// API mount points.
func TestKeywordScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := send(t, srv, postJSON("/api/keywords", `{"channelId":"c1","text":"sale"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201 (body %s)", resp.StatusCode, body)
	}

	var created models.Keyword
	if err := json.Unmarshal([]byte(body), &created); err != nil {
		t.Fatalf("failed to decode keyword: %v", err)
	}
	want := models.Keyword{ID: created.ID, ChannelID: "c1", Text: "sale"}
	if created.ID == "" || created != want {
		t.Errorf("created = %+v, want %+v with an id", created, want)
	}

	resp, body = send(t, srv, postJSON("/keywords", `{"channelId":"c1","text":"sale"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate POST status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "already exists") {
		t.Errorf("duplicate body = %s, want already exists message", body)
	}

	resp, _ = send(t, srv, httptest.NewRequest(http.MethodDelete, "/keywords/"+created.ID, nil))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", resp.StatusCode)
	}

	resp, body = send(t, srv, httptest.NewRequest(http.MethodGet, "/api/keywords", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("GET body = %s, want []", body)
	}
}

func TestIndexPage(t *testing.T) {
	srv, s := newTestServer(t)
	testutil.CreateTestKeyword(t, s, "c9", "clearance")

	resp, body := send(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	for _, want := range []string{"clearance", "/static/app.js"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := send(t, srv, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, `"/api/keywords"`) {
		t.Error("app.js does not call /api/keywords")
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := send(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body != `{"status":"ok"}` {
		t.Errorf("body = %s, want {\"status\":\"ok\"}", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	testutil.CreateTestKeyword(t, s, "c1", "sale")

	resp, _ := send(t, srv, httptest.NewRequest(http.MethodGet, "/keywords", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /keywords status = %d, want 200", resp.StatusCode)
	}

	resp, body := send(t, srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{
		`keywatch_keyword_operations_total{operation="list",outcome="ok"} 1`,
		`keywatch_keywords{channel="c1"} 1`,
		`keywatch_keyword_alerts{channel="c1"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsEndpoint_PerServer(t *testing.T) {
	first, s := newTestServer(t)
	testutil.CreateTestKeyword(t, s, "chanA", "sale")
	send(t, first, httptest.NewRequest(http.MethodGet, "/keywords", nil))

	second, _ := newTestServer(t)
	_, body := send(t, second, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if strings.Contains(body, "chanA") {
		t.Error("second server reports keywords from the first server's store")
	}
	if strings.Contains(body, `operation="list"`) {
		t.Error("second server reports operations recorded by the first server")
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/keywords", nil)
	req.Header.Set("Origin", "https://alerts.example.com")
	resp, _ := send(t, srv, req)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://alerts.example.com" {
		t.Errorf("allowed origin header = %q, want https://alerts.example.com", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/keywords", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, _ = send(t, srv, req)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin header = %q, want empty", got)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	s, err := OpenStore(ctx, "memory://")
	if err != nil {
		t.Fatalf("OpenStore(memory://) error = %v", err)
	}
	if _, ok := s.(*memory.Store); !ok {
		t.Errorf("OpenStore(memory://) = %T, want *memory.Store", s)
	}
	s.Close()

	_, err = OpenStore(ctx, "redis://localhost:6379")
	if err == nil || !strings.Contains(err.Error(), `unsupported store scheme "redis"`) {
		t.Errorf("OpenStore(redis://) error = %v, want unsupported scheme", err)
	}

	if _, err := OpenStore(ctx, "://bad"); err == nil {
		t.Error("OpenStore(://bad) error = nil, want parse error")
	}
}

func TestOpenStore_Postgres(t *testing.T) {
	connString := testutil.TestDatabaseURL(t)

	s, err := OpenStore(context.Background(), connString)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestOpenStore_Mongo(t *testing.T) {
	uri := testutil.TestMongoURI(t)

	s, err := OpenStore(context.Background(), uri)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
