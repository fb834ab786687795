package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/models"
	"example.com/opscost-dashboard/backend/internal/notifications"
	"example.com/opscost-dashboard/backend/internal/pricing"
)

type CostsHandler struct {
	Costs    *ledger.CostLedger
	Notifier *notifications.Hub
}

// NewCostsHandler создает обработчик категорий операционных затрат.
func NewCostsHandler(costs *ledger.CostLedger, notifier *notifications.Hub) *CostsHandler {
	return &CostsHandler{Costs: costs, Notifier: notifier}
}

type UpdateCostRequest struct {
	MonthlyCost float64 `json:"monthly_cost" validate:"gte=0"`
}

type CostsResponse struct {
	Costs        []models.CostCategory `json:"costs"`
	TotalMonthly float64               `json:"total_monthly"`
}

type CostsSummaryResponse struct {
	TotalMonthly   float64 `json:"total_monthly"`
	TotalAnnual    float64 `json:"total_annual"`
	WeeklyOverhead float64 `json:"weekly_overhead"`
}

// List возвращает шесть категорий затрат и их суммарную месячную стоимость.
func (h *CostsHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, CostsResponse{
		Costs:        h.Costs.List(),
		TotalMonthly: h.Costs.TotalMonthly(),
	})
}

// Update записывает новое значение категории. Неизвестные и производные
// категории молча пропускаются, ответ всегда содержит актуальный список.
func (h *CostsHandler) Update(c echo.Context) error {
	var req UpdateCostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if err := h.Costs.Update(c.Param("id"), req.MonthlyCost); err != nil {
		return serverError(c)
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})

	return c.JSON(http.StatusOK, CostsResponse{
		Costs:        h.Costs.List(),
		TotalMonthly: h.Costs.TotalMonthly(),
	})
}

// Summary возвращает агрегаты по затратам, включая недельный оверхед.
func (h *CostsHandler) Summary(c echo.Context) error {
	total := h.Costs.TotalMonthly()

	return c.JSON(http.StatusOK, CostsSummaryResponse{
		TotalMonthly:   total,
		TotalAnnual:    total * 12,
		WeeklyOverhead: pricing.WeeklyOverhead(total),
	})
}
