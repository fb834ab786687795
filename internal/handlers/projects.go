package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/auth"
	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/models"
	"example.com/opscost-dashboard/backend/internal/notifications"
	"example.com/opscost-dashboard/backend/internal/pricing"
	"example.com/opscost-dashboard/backend/internal/repository"
)

type ProjectHandler struct {
	Projects *repository.ProjectRepository
	Costs    *ledger.CostLedger
	Notifier *notifications.Hub
}

// NewProjectHandler создает обработчик проектов пользователя.
func NewProjectHandler(projects *repository.ProjectRepository, costs *ledger.CostLedger, notifier *notifications.Hub) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Costs: costs, Notifier: notifier}
}

type ProjectRequest struct {
	Name                         string               `json:"name" validate:"required,max=200"`
	Description                  string               `json:"description" validate:"max=1000"`
	StartDate                    string               `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                      string               `json:"end_date" validate:"required,datetime=2006-01-02"`
	Status                       models.ProjectStatus `json:"status" validate:"required,oneof=active completed cancelled"`
	AllocationMode               string               `json:"allocation_mode" validate:"omitempty,oneof=auto manual"`
	OverheadAllocationPercentage *float64             `json:"overhead_allocation_percentage" validate:"omitempty,gte=0,lte=100"`
	ProfitMargin                 float64              `json:"profit_margin" validate:"gte=0"`
}

type ProjectMetrics struct {
	DurationInWeeks             int     `json:"duration_in_weeks"`
	RemainingWeeks              int     `json:"remaining_weeks"`
	WeeklyOverhead              float64 `json:"weekly_overhead"`
	AllocatedOverhead           float64 `json:"allocated_overhead"`
	ProfitMargin                float64 `json:"profit_margin"`
	DisplayAllocationPercentage float64 `json:"display_allocation_percentage"`
}

type ProjectResponse struct {
	models.Project
	Metrics ProjectMetrics `json:"metrics"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// List возвращает проекты пользователя с производными метриками.
// Для активных проектов процент распределения в метриках пересчитывается
// на лету, в базе остается значение, записанное при последнем изменении.
func (h *ProjectHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	projects, err := h.Projects.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	now := time.Now()
	weekly := pricing.WeeklyOverhead(h.Costs.TotalMonthly())

	out := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, ProjectResponse{
			Project: project,
			Metrics: h.projectMetrics(project, projects, weekly, now),
		})
	}

	return c.JSON(http.StatusOK, ProjectsResponse{Projects: out})
}

// Get возвращает один проект пользователя.
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	project, err := h.Projects.GetByID(c.Request().Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "project not found")
		}
		return serverError(c)
	}

	siblings, err := h.Projects.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	weekly := pricing.WeeklyOverhead(h.Costs.TotalMonthly())

	return c.JSON(http.StatusOK, ProjectResponse{
		Project: project,
		Metrics: h.projectMetrics(project, siblings, weekly, time.Now()),
	})
}

// Create добавляет проект, рассчитывая долю оверхеда и цену.
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	input, err := h.buildInput(c, userID, uuid.Nil)
	if err != nil {
		if errors.Is(err, errProjectInternal) {
			return serverError(c)
		}
		return badRequest(c, err.Error())
	}

	project, err := h.Projects.Create(c.Request().Context(), userID, input)
	if err != nil {
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{Type: notifications.EventProjectsUpdated})
	return h.respondWithMetrics(c, http.StatusCreated, userID, project)
}

// Update пересчитывает и перезаписывает проект. Процент распределения
// сохраняется только для редактируемого проекта, остальные активные не трогаются.
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	input, err := h.buildInput(c, userID, projectID)
	if err != nil {
		if errors.Is(err, errProjectInternal) {
			return serverError(c)
		}
		return badRequest(c, err.Error())
	}

	project, err := h.Projects.Update(c.Request().Context(), userID, projectID, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "project not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{Type: notifications.EventProjectsUpdated})
	return h.respondWithMetrics(c, http.StatusOK, userID, project)
}

// Delete удаляет проект пользователя.
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid project id")
	}

	if err := h.Projects.Delete(c.Request().Context(), userID, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "project not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{Type: notifications.EventProjectsUpdated})
	return c.NoContent(http.StatusNoContent)
}

// Ошибка зависимостей при сборке проекта, отличает 500 от ошибок валидации.
var errProjectInternal = errors.New("project input: internal error")

// buildInput валидирует запрос и рассчитывает сохраняемые поля проекта.
// excludeID исключает редактируемый проект из списка соседей при авторасчете.
func (h *ProjectHandler) buildInput(c echo.Context, userID, excludeID uuid.UUID) (repository.ProjectInput, error) {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return repository.ProjectInput{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return repository.ProjectInput{}, errors.New("validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return repository.ProjectInput{}, errors.New("name is required")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return repository.ProjectInput{}, errors.New("invalid start date")
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return repository.ProjectInput{}, errors.New("invalid end date")
	}

	if endDate.Before(startDate) {
		return repository.ProjectInput{}, errors.New("end date must not be before start date")
	}

	now := time.Now()
	metrics := pricing.CalculateDurationMetrics(startDate, endDate, now)

	allocationPct, err := h.resolveAllocation(c, req, userID, excludeID, metrics.RemainingWeeks, now)
	if err != nil {
		return repository.ProjectInput{}, err
	}

	weekly := pricing.WeeklyOverhead(h.Costs.TotalMonthly())
	allocated := pricing.AllocatedOverhead(weekly, metrics.DurationInWeeks, allocationPct)
	price := pricing.ProjectPrice(allocated, req.ProfitMargin)

	return repository.ProjectInput{
		Name:                         name,
		Description:                  strings.TrimSpace(req.Description),
		StartDate:                    startDate,
		EndDate:                      endDate,
		Status:                       req.Status,
		OverheadAllocationPercentage: allocationPct,
		Price:                        price,
	}, nil
}

func (h *ProjectHandler) resolveAllocation(c echo.Context, req ProjectRequest, userID, excludeID uuid.UUID, remainingWeeks int, now time.Time) (float64, error) {
	if req.AllocationMode == "manual" {
		if req.OverheadAllocationPercentage == nil {
			return 0, errors.New("overhead allocation percentage is required for manual mode")
		}
		return *req.OverheadAllocationPercentage, nil
	}

	siblings, err := h.Projects.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return 0, errProjectInternal
	}

	var otherRemaining []int
	for _, sibling := range siblings {
		if sibling.ID == excludeID || sibling.Status != models.ProjectStatusActive {
			continue
		}
		otherRemaining = append(otherRemaining,
			pricing.CalculateDurationMetrics(sibling.StartDate, sibling.EndDate, now).RemainingWeeks)
	}

	return pricing.AutoAllocationPercentage(remainingWeeks, otherRemaining), nil
}

// projectMetrics считает производные показатели проекта на фоне остальных.
func (h *ProjectHandler) projectMetrics(project models.Project, all []models.Project, weeklyOverhead float64, now time.Time) ProjectMetrics {
	metrics := pricing.CalculateDurationMetrics(project.StartDate, project.EndDate, now)
	allocated := pricing.AllocatedOverhead(weeklyOverhead, metrics.DurationInWeeks, project.OverheadAllocationPercentage)

	displayPct := project.OverheadAllocationPercentage
	if project.Status == models.ProjectStatusActive {
		var otherRemaining []int
		for _, sibling := range all {
			if sibling.ID == project.ID || sibling.Status != models.ProjectStatusActive {
				continue
			}
			otherRemaining = append(otherRemaining,
				pricing.CalculateDurationMetrics(sibling.StartDate, sibling.EndDate, now).RemainingWeeks)
		}
		displayPct = pricing.AutoAllocationPercentage(metrics.RemainingWeeks, otherRemaining)
	}

	return ProjectMetrics{
		DurationInWeeks:             metrics.DurationInWeeks,
		RemainingWeeks:              metrics.RemainingWeeks,
		WeeklyOverhead:              weeklyOverhead,
		AllocatedOverhead:           allocated,
		ProfitMargin:                pricing.ProfitMargin(project.Price, allocated),
		DisplayAllocationPercentage: displayPct,
	}
}

func (h *ProjectHandler) respondWithMetrics(c echo.Context, status int, userID uuid.UUID, project models.Project) error {
	siblings, err := h.Projects.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	weekly := pricing.WeeklyOverhead(h.Costs.TotalMonthly())

	return c.JSON(status, ProjectResponse{
		Project: project,
		Metrics: h.projectMetrics(project, siblings, weekly, time.Now()),
	})
}
