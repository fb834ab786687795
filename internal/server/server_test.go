package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/auth"
	"example.com/opscost-dashboard/backend/internal/config"
	"example.com/opscost-dashboard/backend/internal/handlers"
	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

func testConfig() config.Config {
	return config.Config{
		Env: "test",
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			JWTIssuer:          "opscost-dashboard",
			AccessTokenTTL:     time.Minute,
			RefreshTokenTTL:    time.Hour,
			RateLimitPerMinute: 60,
			RateLimitBurst:     10,
		},
	}
}

// TestNewSyncsDerivedCostsOnStart проверяет, что на свежем хранилище категория подписок
// сразу равна сумме подписок, а не нулю из дефолтов.
func TestNewSyncsDerivedCostsOnStart(t *testing.T) {
	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e, err := New(cfg, logger, nil, store)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	manager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	pair, err := manager.NewPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("new pair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/costs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp handlers.CostsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var subscriptions float64
	for _, category := range resp.Costs {
		if category.ID == models.CostAppsSubscriptions {
			subscriptions = category.MonthlyCost
		}
	}

	if subscriptions != 65 {
		t.Fatalf("appsSubscriptions = %v, want 65", subscriptions)
	}

	if resp.TotalMonthly != 6865 {
		t.Fatalf("total monthly = %v, want 6865", resp.TotalMonthly)
	}
}
