package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/auth"
	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/models"
	"example.com/opscost-dashboard/backend/internal/pricing"
	"example.com/opscost-dashboard/backend/internal/repository"
)

type PricingHandler struct {
	Projects *repository.ProjectRepository
	Costs    *ledger.CostLedger
}

// NewPricingHandler создает калькулятор цены проекта.
func NewPricingHandler(projects *repository.ProjectRepository, costs *ledger.CostLedger) *PricingHandler {
	return &PricingHandler{Projects: projects, Costs: costs}
}

type QuoteRequest struct {
	StartDate                    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                      string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	AllocationMode               string   `json:"allocation_mode" validate:"omitempty,oneof=auto manual"`
	OverheadAllocationPercentage *float64 `json:"overhead_allocation_percentage" validate:"omitempty,gte=0,lte=100"`
	ProfitMargin                 float64  `json:"profit_margin" validate:"gte=0"`
}

type QuoteActiveProject struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	RemainingWeeks       int     `json:"remaining_weeks"`
	AllocationPercentage float64 `json:"allocation_percentage"`
}

type QuoteResponse struct {
	DurationInWeeks      int                  `json:"duration_in_weeks"`
	RemainingWeeks       int                  `json:"remaining_weeks"`
	MonthlyOverhead      float64              `json:"monthly_overhead"`
	WeeklyOverhead       float64              `json:"weekly_overhead"`
	AllocationPercentage float64              `json:"allocation_percentage"`
	AllocatedOverhead    float64              `json:"allocated_overhead"`
	TotalCost            float64              `json:"total_cost"`
	ProfitAmount         float64              `json:"profit_amount"`
	ProjectPrice         float64              `json:"project_price"`
	ActiveProjects       []QuoteActiveProject `json:"active_projects"`
}

// Quote считает цену гипотетического проекта без сохранения.
// Распределение для существующих активных проектов показывается уже с
// учетом нового проекта.
func (h *PricingHandler) Quote(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return badRequest(c, "invalid start date")
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return badRequest(c, "invalid end date")
	}

	if endDate.Before(startDate) {
		return badRequest(c, "end date must not be before start date")
	}

	now := time.Now()
	metrics := pricing.CalculateDurationMetrics(startDate, endDate, now)

	projects, err := h.Projects.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	type activeEntry struct {
		project   models.Project
		remaining int
	}

	var actives []activeEntry
	var otherRemaining []int
	for _, project := range projects {
		if project.Status != models.ProjectStatusActive {
			continue
		}
		remaining := pricing.CalculateDurationMetrics(project.StartDate, project.EndDate, now).RemainingWeeks
		actives = append(actives, activeEntry{project: project, remaining: remaining})
		otherRemaining = append(otherRemaining, remaining)
	}

	allocationPct := pricing.AutoAllocationPercentage(metrics.RemainingWeeks, otherRemaining)
	if req.AllocationMode == "manual" {
		if req.OverheadAllocationPercentage == nil {
			return badRequest(c, "overhead allocation percentage is required for manual mode")
		}
		allocationPct = *req.OverheadAllocationPercentage
	}

	monthly := h.Costs.TotalMonthly()
	weekly := pricing.WeeklyOverhead(monthly)
	allocated := pricing.AllocatedOverhead(weekly, metrics.DurationInWeeks, allocationPct)
	price := pricing.ProjectPrice(allocated, req.ProfitMargin)

	activeProjects := make([]QuoteActiveProject, 0, len(actives))
	for _, entry := range actives {
		remainingOthers := make([]int, 0, len(actives))
		for _, other := range actives {
			if other.project.ID == entry.project.ID {
				continue
			}
			remainingOthers = append(remainingOthers, other.remaining)
		}
		remainingOthers = append(remainingOthers, metrics.RemainingWeeks)

		activeProjects = append(activeProjects, QuoteActiveProject{
			ID:                   entry.project.ID.String(),
			Name:                 entry.project.Name,
			RemainingWeeks:       entry.remaining,
			AllocationPercentage: pricing.AutoAllocationPercentage(entry.remaining, remainingOthers),
		})
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		DurationInWeeks:      metrics.DurationInWeeks,
		RemainingWeeks:       metrics.RemainingWeeks,
		MonthlyOverhead:      monthly,
		WeeklyOverhead:       weekly,
		AllocationPercentage: allocationPct,
		AllocatedOverhead:    allocated,
		TotalCost:            allocated,
		ProfitAmount:         price - allocated,
		ProjectPrice:         price,
		ActiveProjects:       activeProjects,
	})
}
