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

type SubscriptionHandler struct {
	Subscriptions *ledger.SubscriptionLedger
	Costs         *ledger.CostLedger
	Notifier      *notifications.Hub
}

// NewSubscriptionHandler создает обработчик леджера подписок.
func NewSubscriptionHandler(subscriptions *ledger.SubscriptionLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{Subscriptions: subscriptions, Costs: costs, Notifier: notifier}
}

type CreateSubscriptionRequest struct {
	Name         string                      `json:"name" validate:"required,max=200"`
	Description  string                      `json:"description" validate:"max=500"`
	MonthlyCost  float64                     `json:"monthly_cost" validate:"gte=0"`
	BillingCycle models.BillingCycle         `json:"billing_cycle" validate:"required,oneof=monthly annually"`
	Category     models.SubscriptionCategory `json:"category" validate:"required,oneof=development design marketing productivity other"`
	Website      string                      `json:"website" validate:"max=200"`
	RenewalDate  string                      `json:"renewal_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateSubscriptionRequest struct {
	Name         *string                      `json:"name" validate:"omitempty,max=200"`
	Description  *string                      `json:"description" validate:"omitempty,max=500"`
	MonthlyCost  *float64                     `json:"monthly_cost" validate:"omitempty,gte=0"`
	BillingCycle *models.BillingCycle         `json:"billing_cycle" validate:"omitempty,oneof=monthly annually"`
	Category     *models.SubscriptionCategory `json:"category" validate:"omitempty,oneof=development design marketing productivity other"`
	Website      *string                      `json:"website" validate:"omitempty,max=200"`
	RenewalDate  *string                      `json:"renewal_date" validate:"omitempty,datetime=2006-01-02"`
}

type SubscriptionsResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
	TotalMonthly  float64               `json:"total_monthly"`
}

// List возвращает подписки и их суммарную месячную стоимость.
func (h *SubscriptionHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, SubscriptionsResponse{
		Subscriptions: h.Subscriptions.List(),
		TotalMonthly:  h.Subscriptions.TotalMonthly(),
	})
}

// Create добавляет подписку и пересчитывает производную категорию затрат.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	var req CreateSubscriptionRequest
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

	subscription, err := h.Subscriptions.Add(models.Subscription{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		MonthlyCost:  req.MonthlyCost,
		BillingCycle: req.BillingCycle,
		Category:     req.Category,
		Website:      strings.TrimSpace(req.Website),
		RenewalDate:  req.RenewalDate,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, subscription)
}

// Update вносит частичные изменения в подписку.
func (h *SubscriptionHandler) Update(c echo.Context) error {
	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	subscription, err := h.Subscriptions.Update(c.Param("id"), ledger.SubscriptionPatch{
		Name:         req.Name,
		Description:  req.Description,
		MonthlyCost:  req.MonthlyCost,
		BillingCycle: req.BillingCycle,
		Category:     req.Category,
		Website:      req.Website,
		RenewalDate:  req.RenewalDate,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, subscription)
}

// Delete удаляет подписку.
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	if err := h.Subscriptions.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Категория appsSubscriptions всегда равна сумме леджера подписок.
func (h *SubscriptionHandler) syncCosts() error {
	if err := h.Costs.RecomputeDerived(h.Subscriptions.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
