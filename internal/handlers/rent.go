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

type RentHandler struct {
	Rent     *ledger.RentLedger
	Costs    *ledger.CostLedger
	Notifier *notifications.Hub
}

// NewRentHandler создает обработчик леджера аренды офисов.
func NewRentHandler(rent *ledger.RentLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *RentHandler {
	return &RentHandler{Rent: rent, Costs: costs, Notifier: notifier}
}

type CreateBranchRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Location string `json:"location" validate:"max=200"`
}

type UpdateBranchRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Location *string `json:"location" validate:"omitempty,max=200"`
}

type CreateRentExpenseRequest struct {
	Name         string              `json:"name" validate:"required,max=200"`
	AnnualAmount float64             `json:"annual_amount" validate:"gte=0"`
	DueDate      string              `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Category     models.RentCategory `json:"category" validate:"required,oneof=rent utilities maintenance security other"`
	Status       models.RentStatus   `json:"status" validate:"required,oneof=paid pending overdue"`
	Notes        string              `json:"notes" validate:"max=500"`
}

type UpdateRentExpenseRequest struct {
	Name         *string              `json:"name" validate:"omitempty,max=200"`
	AnnualAmount *float64             `json:"annual_amount" validate:"omitempty,gte=0"`
	DueDate      *string              `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Category     *models.RentCategory `json:"category" validate:"omitempty,oneof=rent utilities maintenance security other"`
	Status       *models.RentStatus   `json:"status" validate:"omitempty,oneof=paid pending overdue"`
	Notes        *string              `json:"notes" validate:"omitempty,max=500"`
}

type BranchesResponse struct {
	Branches     []models.Branch `json:"branches"`
	TotalAnnual  float64         `json:"total_annual"`
	TotalMonthly float64         `json:"total_monthly"`
}

type RentSummaryResponse struct {
	Period       ledger.Period `json:"period"`
	PeriodAmount float64       `json:"period_amount"`
	TotalAnnual  float64       `json:"total_annual"`
	TotalMonthly float64       `json:"total_monthly"`
}

// List возвращает филиалы с расходами и итоговые суммы.
func (h *RentHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, BranchesResponse{
		Branches:     h.Rent.List(),
		TotalAnnual:  h.Rent.TotalAnnual(),
		TotalMonthly: h.Rent.TotalMonthly(),
	})
}

// Summary пересчитывает годовую сумму аренды в запрошенный период оплаты.
func (h *RentHandler) Summary(c echo.Context) error {
	period := ledger.Period(c.QueryParam("period"))
	switch period {
	case "":
		period = ledger.PeriodMonthly
	case ledger.PeriodMonthly, ledger.PeriodQuarterly, ledger.PeriodSemiAnnually, ledger.PeriodAnnually:
	default:
		return badRequest(c, "invalid period")
	}

	annual := h.Rent.TotalAnnual()

	return c.JSON(http.StatusOK, RentSummaryResponse{
		Period:       period,
		PeriodAmount: ledger.PeriodCost(annual, period),
		TotalAnnual:  annual,
		TotalMonthly: annual / 12,
	})
}

// CreateBranch добавляет филиал.
func (h *RentHandler) CreateBranch(c echo.Context) error {
	var req CreateBranchRequest
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

	branch, err := h.Rent.AddBranch(models.Branch{
		Name:     name,
		Location: strings.TrimSpace(req.Location),
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, branch)
}

// UpdateBranch вносит частичные изменения в филиал.
func (h *RentHandler) UpdateBranch(c echo.Context) error {
	var req UpdateBranchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	branch, err := h.Rent.UpdateBranch(c.Param("id"), ledger.BranchPatch{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "branch not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, branch)
}

// DeleteBranch удаляет филиал вместе с его расходами.
func (h *RentHandler) DeleteBranch(c echo.Context) error {
	if err := h.Rent.DeleteBranch(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "branch not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateExpense добавляет расход филиала.
func (h *RentHandler) CreateExpense(c echo.Context) error {
	var req CreateRentExpenseRequest
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

	expense, err := h.Rent.AddExpense(c.Param("id"), models.RentExpense{
		Name:         name,
		AnnualAmount: req.AnnualAmount,
		DueDate:      req.DueDate,
		Category:     req.Category,
		Status:       req.Status,
		Notes:        strings.TrimSpace(req.Notes),
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "branch not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense вносит частичные изменения в расход филиала.
func (h *RentHandler) UpdateExpense(c echo.Context) error {
	var req UpdateRentExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	expense, err := h.Rent.UpdateExpense(c.Param("id"), c.Param("expenseId"), ledger.RentExpensePatch{
		Name:         req.Name,
		AnnualAmount: req.AnnualAmount,
		DueDate:      req.DueDate,
		Category:     req.Category,
		Status:       req.Status,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense удаляет расход филиала.
func (h *RentHandler) DeleteExpense(c echo.Context) error {
	if err := h.Rent.DeleteExpense(c.Param("id"), c.Param("expenseId")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RentHandler) syncCosts() error {
	if err := h.Costs.SyncCategory(models.CostOfficeRent, h.Rent.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
