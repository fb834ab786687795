package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/models"
	"example.com/opscost-dashboard/backend/internal/notifications"
)

type SupplyHandler struct {
	Supplies *ledger.SupplyLedger
	Costs    *ledger.CostLedger
	Notifier *notifications.Hub
}

// NewSupplyHandler создает обработчик леджера офисных принадлежностей.
func NewSupplyHandler(supplies *ledger.SupplyLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *SupplyHandler {
	return &SupplyHandler{Supplies: supplies, Costs: costs, Notifier: notifier}
}

type CreateSupplyRequest struct {
	Name            string                `json:"name" validate:"required,max=200"`
	MonthlyQuantity float64               `json:"monthly_quantity" validate:"gte=0"`
	UnitCost        float64               `json:"unit_cost" validate:"gte=0"`
	Category        models.SupplyCategory `json:"category" validate:"required,oneof=office cleaning kitchen tech furniture other"`
	LastPurchased   string                `json:"last_purchased" validate:"omitempty,datetime=2006-01-02"`
	ReorderPoint    float64               `json:"reorder_point" validate:"gte=0"`
	MonthlyBudget   float64               `json:"monthly_budget" validate:"gte=0"`
}

type UpdateSupplyRequest struct {
	Name            *string                `json:"name" validate:"omitempty,max=200"`
	MonthlyQuantity *float64               `json:"monthly_quantity" validate:"omitempty,gte=0"`
	UnitCost        *float64               `json:"unit_cost" validate:"omitempty,gte=0"`
	Category        *models.SupplyCategory `json:"category" validate:"omitempty,oneof=office cleaning kitchen tech furniture other"`
	LastPurchased   *string                `json:"last_purchased" validate:"omitempty,datetime=2006-01-02"`
	ReorderPoint    *float64               `json:"reorder_point" validate:"omitempty,gte=0"`
	MonthlyBudget   *float64               `json:"monthly_budget" validate:"omitempty,gte=0"`
}

type SuppliesResponse struct {
	Supplies      []models.Supply `json:"supplies"`
	TotalMonthly  float64         `json:"total_monthly"`
	MonthlyBudget float64         `json:"monthly_budget"`
}

// List возвращает принадлежности, фактическую стоимость и суммарный бюджет.
func (h *SupplyHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, SuppliesResponse{
		Supplies:      h.Supplies.List(),
		TotalMonthly:  h.Supplies.TotalMonthly(),
		MonthlyBudget: h.Supplies.TotalMonthlyBudget(),
	})
}

// Create добавляет позицию и обновляет категорию затрат.
func (h *SupplyHandler) Create(c echo.Context) error {
	var req CreateSupplyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	supply, err := h.Supplies.Add(models.Supply{
		Name:            name,
		MonthlyQuantity: req.MonthlyQuantity,
		UnitCost:        req.UnitCost,
		Category:        req.Category,
		LastPurchased:   req.LastPurchased,
		ReorderPoint:    req.ReorderPoint,
		MonthlyBudget:   req.MonthlyBudget,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, supply)
}

// Update вносит частичные изменения в позицию.
func (h *SupplyHandler) Update(c echo.Context) error {
	var req UpdateSupplyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	supply, err := h.Supplies.Update(c.Param("id"), ledger.SupplyPatch{
		Name:            req.Name,
		MonthlyQuantity: req.MonthlyQuantity,
		UnitCost:        req.UnitCost,
		Category:        req.Category,
		LastPurchased:   req.LastPurchased,
		ReorderPoint:    req.ReorderPoint,
		MonthlyBudget:   req.MonthlyBudget,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "supply not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, supply)
}

// Delete удаляет позицию.
func (h *SupplyHandler) Delete(c echo.Context) error {
	if err := h.Supplies.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "supply not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SupplyHandler) syncCosts() error {
	if err := h.Costs.SyncCategory(models.CostOfficeSupplies, h.Supplies.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
