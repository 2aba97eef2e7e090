package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"brecho/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:               ":0",
		Environment:        "test",
		FrontendDir:        filepath.Join(t.TempDir(), "missing"),
		CORSAllowedOrigins: []string{"*"},
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		ShutdownTimeout:    time.Second,
		MetricsEnabled:     true,
	}
}

func newApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestHealthAndReadinessWithoutDatabase(t *testing.T) {
	app := newApp(t, testConfig(t))
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestPayrollRouteAndMetrics(t *testing.T) {
	app := newApp(t, testConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/folha/calcular", strings.NewReader(`{"salario_bruto":3000,"vale_transporte_perc":6}`))
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var body struct {
		Data struct {
			RequestsTotal uint64 `json:"requestsTotal"`
			Calculations  []struct {
				Kind string `json:"kind"`
				OK   uint64 `json:"ok"`
			} `json:"calculations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if body.Data.RequestsTotal < 1 || len(body.Data.Calculations) != 1 || body.Data.Calculations[0].OK != 1 {
		t.Fatalf("unexpected metrics %+v", body.Data)
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	app := newApp(t, testConfig(t))
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nada", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBodyLimitOnAPI(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxBodyBytes = 1024
	app := newApp(t, cfg)

	payload := `{"salario_bruto":3000,"outros_descontos":"` + strings.Repeat("1", 2048) + `"}`
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/folha/calcular", strings.NewReader(payload)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestInvalidTablesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.TaxTablesFile = filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected missing tables file to fail startup")
	}
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>brecho</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	cfg := testConfig(t)
	cfg.FrontendDir = dir
	app := newApp(t, cfg)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/funcionarios", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "brecho") {
		t.Fatalf("expected index fallback, got %d %q", rec.Code, rec.Body.String())
	}
}
