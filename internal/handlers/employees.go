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

type EmployeeHandler struct {
	Employees *ledger.EmployeeLedger
	Costs     *ledger.CostLedger
	Notifier  *notifications.Hub
}

// NewEmployeeHandler создает обработчик леджера сотрудников.
func NewEmployeeHandler(employees *ledger.EmployeeLedger, costs *ledger.CostLedger, notifier *notifications.Hub) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees, Costs: costs, Notifier: notifier}
}

type CreateEmployeeRequest struct {
	Name       string                `json:"name" validate:"required,max=200"`
	Position   string                `json:"position" validate:"max=200"`
	Department string                `json:"department" validate:"max=200"`
	Salary     float64               `json:"salary" validate:"gte=0"`
	StartDate  string                `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Status     models.EmployeeStatus `json:"status" validate:"required,oneof=active on-leave terminated"`
}

type UpdateEmployeeRequest struct {
	Name       *string                `json:"name" validate:"omitempty,max=200"`
	Position   *string                `json:"position" validate:"omitempty,max=200"`
	Department *string                `json:"department" validate:"omitempty,max=200"`
	Salary     *float64               `json:"salary" validate:"omitempty,gte=0"`
	StartDate  *string                `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Status     *models.EmployeeStatus `json:"status" validate:"omitempty,oneof=active on-leave terminated"`
}

type EmployeesResponse struct {
	Employees    []models.Employee `json:"employees"`
	TotalMonthly float64           `json:"total_monthly"`
}

// List возвращает сотрудников и суммарный месячный фонд оплаты труда.
func (h *EmployeeHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, EmployeesResponse{
		Employees:    h.Employees.List(),
		TotalMonthly: h.Employees.TotalMonthly(),
	})
}

// Create добавляет сотрудника и обновляет категорию фонда оплаты труда.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req CreateEmployeeRequest
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

	employee, err := h.Employees.Add(models.Employee{
		Name:       name,
		Position:   strings.TrimSpace(req.Position),
		Department: strings.TrimSpace(req.Department),
		Salary:     req.Salary,
		StartDate:  req.StartDate,
		Status:     req.Status,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, employee)
}

// Update вносит частичные изменения в карточку сотрудника.
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	employee, err := h.Employees.Update(c.Param("id"), ledger.EmployeePatch{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
		StartDate:  req.StartDate,
		Status:     req.Status,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "employee not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, employee)
}

// Delete удаляет сотрудника.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.Employees.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return notFound(c, "employee not found")
		}
		return serverError(c)
	}

	if err := h.syncCosts(); err != nil {
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) syncCosts() error {
	if err := h.Costs.SyncCategory(models.CostEmployeesPayroll, h.Employees.TotalMonthly()); err != nil {
		return err
	}

	h.Notifier.Broadcast(notifications.Event{Type: notifications.EventCostsUpdated})
	return nil
}
