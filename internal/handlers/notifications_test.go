package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/auth"
	"example.com/opscost-dashboard/backend/internal/notifications"
)

type plainWriter struct {
	http.ResponseWriter
}

// TestStreamRequiresFlusher проверяет, что без поддержки флаша клиент получает 500,
// а не пустой SSE-поток со статусом 200.
func TestStreamRequiresFlusher(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)

	c := e.NewContext(req, rec)
	c.Response().Writer = plainWriter{rec}
	c.Set(auth.ContextUserIDKey, uuid.New())

	handler := NewNotificationHandler(notifications.NewHub())
	if err := handler.Stream(c); err != nil {
		t.Fatalf("stream: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
