package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/models"
)

func testProject(status models.ProjectStatus, start, end string, pct, price float64) models.Project {
	startDate, _ := time.Parse(dateLayout, start)
	endDate, _ := time.Parse(dateLayout, end)

	return models.Project{
		ID:                           uuid.New(),
		Name:                         "test",
		StartDate:                    startDate,
		EndDate:                      endDate,
		Status:                       status,
		OverheadAllocationPercentage: pct,
		Price:                        price,
	}
}

// TestProjectMetricsActive проверяет пересчет доли оверхеда между активными проектами.
func TestProjectMetricsActive(t *testing.T) {
	h := &ProjectHandler{}
	now, _ := time.Parse(dateLayout, "2025-01-01")

	project := testProject(models.ProjectStatusActive, "2025-01-01", "2025-01-29", 50, 0)
	sibling := testProject(models.ProjectStatusActive, "2025-01-01", "2025-02-12", 50, 0)

	metrics := h.projectMetrics(project, []models.Project{project, sibling}, 100, now)

	if metrics.DurationInWeeks != 4 {
		t.Fatalf("expected 4 weeks duration, got %d", metrics.DurationInWeeks)
	}
	if metrics.RemainingWeeks != 4 {
		t.Fatalf("expected 4 remaining weeks, got %d", metrics.RemainingWeeks)
	}

	// 4 и 6 оставшихся недель дают 40% на первый проект.
	if metrics.DisplayAllocationPercentage != 40 {
		t.Fatalf("expected display allocation 40, got %v", metrics.DisplayAllocationPercentage)
	}

	// Сохраненный процент остается основой стоимости: 100 * 4 * 50%.
	if metrics.AllocatedOverhead != 200 {
		t.Fatalf("expected allocated overhead 200, got %v", metrics.AllocatedOverhead)
	}
}

// TestProjectMetricsCompletedKeepsStoredAllocation проверяет, что неактивный
// проект показывает сохраненный процент без пересчета.
func TestProjectMetricsCompletedKeepsStoredAllocation(t *testing.T) {
	h := &ProjectHandler{}
	now, _ := time.Parse(dateLayout, "2025-06-01")

	project := testProject(models.ProjectStatusCompleted, "2025-01-01", "2025-01-29", 75, 300)

	metrics := h.projectMetrics(project, []models.Project{project}, 100, now)

	if metrics.DisplayAllocationPercentage != 75 {
		t.Fatalf("expected stored allocation 75, got %v", metrics.DisplayAllocationPercentage)
	}
	if metrics.RemainingWeeks != 0 {
		t.Fatalf("expected 0 remaining weeks, got %d", metrics.RemainingWeeks)
	}

	// Цена 300 при стоимости 100*4*75% = 300 дает нулевую маржу.
	if metrics.ProfitMargin != 0 {
		t.Fatalf("expected zero margin, got %v", metrics.ProfitMargin)
	}
}

// TestProjectCreateRequiresUser проверяет отказ без идентификатора пользователя в контексте.
func TestProjectCreateRequiresUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &ProjectHandler{}
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

// TestProjectMetricsSoleActive проверяет, что единственный активный проект получает 100%.
func TestProjectMetricsSoleActive(t *testing.T) {
	h := &ProjectHandler{}
	now, _ := time.Parse(dateLayout, "2025-01-01")

	project := testProject(models.ProjectStatusActive, "2025-01-01", "2025-01-29", 40, 0)

	metrics := h.projectMetrics(project, []models.Project{project}, 100, now)

	if metrics.DisplayAllocationPercentage != 100 {
		t.Fatalf("expected display allocation 100, got %v", metrics.DisplayAllocationPercentage)
	}
}
