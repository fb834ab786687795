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

type InsuranceHandler struct {
	Policies *ledger.InsuranceLedger
	Costs    *ledger.CostLedger
	Notifier *notifications.Hub
}

// NewInsuranceHandler создает обработчик леджера страховых полисов.
func NewInsuranceHandler(policies *ledger.InsuranceLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *InsuranceHandler {
	return &InsuranceHandler{Policies: policies, Costs: costs, Notifier: notifier}
}

type CreatePolicyRequest struct {
	EmployeeName string              `json:"employee_name" validate:"required,max=200"`
	PolicyNumber string              `json:"policy_number" validate:"max=100"`
	Provider     string              `json:"provider" validate:"max=200"`
	MonthlyCost  float64             `json:"monthly_cost" validate:"gte=0"`
	Coverage     models.Coverage     `json:"coverage" validate:"required,oneof=basic standard premium"`
	Status       models.PolicyStatus `json:"status" validate:"required,oneof=active pending expired"`
	StartDate    string              `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string              `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Dependents   int                 `json:"dependents" validate:"gte=0"`
}

type UpdatePolicyRequest struct {
	EmployeeName *string              `json:"employee_name" validate:"omitempty,max=200"`
	PolicyNumber *string              `json:"policy_number" validate:"omitempty,max=100"`
	Provider     *string              `json:"provider" validate:"omitempty,max=200"`
	MonthlyCost  *float64             `json:"monthly_cost" validate:"omitempty,gte=0"`
	Coverage     *models.Coverage     `json:"coverage" validate:"omitempty,oneof=basic standard premium"`
	Status       *models.PolicyStatus `json:"status" validate:"omitempty,oneof=active pending expired"`
	StartDate    *string              `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string              `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Dependents   *int                 `json:"dependents" validate:"omitempty,gte=0"`
}

type PoliciesResponse struct {
	Policies        []models.InsurancePolicy `json:"policies"`
	TotalMonthly    float64                  `json:"total_monthly"`
	TotalDependents int                      `json:"total_dependents"`
}

// List возвращает полисы, суммарную стоимость и число иждивенцев.
func (h *InsuranceHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, PoliciesResponse{
		Policies:        h.Policies.List(),
		TotalMonthly:    h.Policies.TotalMonthly(),
		TotalDependents: h.Policies.TotalDependents(),
	})
}

// Create добавляет полис и обновляет категорию затрат.
func (h *InsuranceHandler) Create(c echo.Context) error {
	var req CreatePolicyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	employeeName := strings.TrimSpace(req.EmployeeName)
	if employeeName == "" {
		return badRequest(c, "employee name is required")
	}

	policy, err := h.Policies.Add(models.InsurancePolicy{
		EmployeeName: employeeName,
		PolicyNumber: strings.TrimSpace(req.PolicyNumber),
		Provider:     strings.TrimSpace(req.Provider),
		MonthlyCost:  req.MonthlyCost,
		Coverage:     req.Coverage,
		Status:       req.Status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Dependents:   req.Dependents,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, policy)
}

// Update вносит частичные изменения в полис.
func (h *InsuranceHandler) Update(c echo.Context) error {
	var req UpdatePolicyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	policy, err := h.Policies.Update(c.Param("id"), ledger.PolicyPatch{
		EmployeeName: req.EmployeeName,
		PolicyNumber: req.PolicyNumber,
		Provider:     req.Provider,
		MonthlyCost:  req.MonthlyCost,
		Coverage:     req.Coverage,
		Status:       req.Status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Dependents:   req.Dependents,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "policy not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, policy)
}

// Delete удаляет полис.
func (h *InsuranceHandler) Delete(c echo.Context) error {
	if err := h.Policies.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "policy not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *InsuranceHandler) syncCosts() error {
	if err := h.Costs.SyncCategory(models.CostHealthInsurance, h.Policies.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
