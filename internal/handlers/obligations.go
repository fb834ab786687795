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

type ObligationHandler struct {
	Obligations *ledger.ObligationLedger
	Costs       *ledger.CostLedger
	Notifier    *notifications.Hub
}

// NewObligationHandler создает обработчик леджера государственных обязательств.
func NewObligationHandler(obligations *ledger.ObligationLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *ObligationHandler {
	return &ObligationHandler{Obligations: obligations, Costs: costs, Notifier: notifier}
}

type CreateObligationRequest struct {
	Name     string                    `json:"name" validate:"required,max=200"`
	Amount   float64                   `json:"amount" validate:"gte=0"`
	DueDate  string                    `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status   models.ObligationStatus   `json:"status" validate:"required,oneof=pending paid overdue"`
	Category models.ObligationCategory `json:"category" validate:"required,oneof=tax license permit insurance other"`
}

type UpdateObligationRequest struct {
	Name     *string                    `json:"name" validate:"omitempty,max=200"`
	Amount   *float64                   `json:"amount" validate:"omitempty,gte=0"`
	DueDate  *string                    `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status   *models.ObligationStatus   `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Category *models.ObligationCategory `json:"category" validate:"omitempty,oneof=tax license permit insurance other"`
}

type ObligationsResponse struct {
	Obligations  []models.Obligation `json:"obligations"`
	TotalMonthly float64             `json:"total_monthly"`
}

// List возвращает обязательства и их суммарный объем.
func (h *ObligationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, ObligationsResponse{
		Obligations:  h.Obligations.List(),
		TotalMonthly: h.Obligations.TotalMonthly(),
	})
}

// Create добавляет обязательство и обновляет категорию затрат.
func (h *ObligationHandler) Create(c echo.Context) error {
	var req CreateObligationRequest
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

	obligation, err := h.Obligations.Add(models.Obligation{
		Name:     name,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Status:   req.Status,
		Category: req.Category,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, obligation)
}

// Update вносит частичные изменения в обязательство.
func (h *ObligationHandler) Update(c echo.Context) error {
	var req UpdateObligationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	obligation, err := h.Obligations.Update(c.Param("id"), ledger.ObligationPatch{
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Status:   req.Status,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "obligation not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, obligation)
}

// Delete удаляет обязательство.
func (h *ObligationHandler) Delete(c echo.Context) error {
	if err := h.Obligations.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "obligation not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ObligationHandler) syncCosts() error {
	if err := h.Costs.SyncCategory(models.CostGovernmentObligations, h.Obligations.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
