package bootstrap_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mohammadpnp/debt-import/internal/bootstrap"
	"github.com/mohammadpnp/debt-import/internal/config"
)

// The gorm handle is opened without connecting, so the routes that never
// touch the database can be exercised without Postgres.
func newOfflineDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=none"}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	server := bootstrap.NewHTTPServer(newOfflineDB(t), config.Default().Import, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

func TestTemplateRouteServesCSV(t *testing.T) {
	t.Parallel()

	server := bootstrap.NewHTTPServer(newOfflineDB(t), config.Default().Import, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/debts?format=csv", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "text/csv" {
		t.Fatalf("unexpected content type: %s", rec.Header().Get("Content-Type"))
	}
}
