package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/opscost-dashboard/backend/internal/models"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

type ProjectInput struct {
	Name                         string
	Description                  string
	StartDate                    time.Time
	EndDate                      time.Time
	Status                       models.ProjectStatus
	OverheadAllocationPercentage float64
	Price                        float64
}

// NewProjectRepository создает репозиторий проектов.
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, name, description, start_date, end_date, status,
	 overhead_allocation_percentage, price, created_at, updated_at`

func scanProject(row pgx.Row) (models.Project, error) {
	var project models.Project

	err := row.Scan(
		&project.ID, &project.UserID, &project.Name, &project.Description,
		&project.StartDate, &project.EndDate, &project.Status,
		&project.OverheadAllocationPercentage, &project.Price,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project, ErrNotFound
		}
		return project, err
	}

	return project, nil
}

// Create сохраняет проект пользователя.
func (r *ProjectRepository) Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (models.Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`INSERT INTO projects (user_id, name, description, start_date, end_date, status,
		                       overhead_allocation_percentage, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+projectColumns,
		userID, input.Name, input.Description, input.StartDate, input.EndDate,
		input.Status, input.OverheadAllocationPercentage, input.Price,
	))
}

// Update обновляет проект пользователя по идентификатору.
func (r *ProjectRepository) Update(ctx context.Context, userID, projectID uuid.UUID, input ProjectInput) (models.Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`UPDATE projects
		 SET name = $3,
		     description = $4,
		     start_date = $5,
		     end_date = $6,
		     status = $7,
		     overhead_allocation_percentage = $8,
		     price = $9,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+projectColumns,
		projectID, userID, input.Name, input.Description, input.StartDate,
		input.EndDate, input.Status, input.OverheadAllocationPercentage, input.Price,
	))
}

// Delete удаляет проект пользователя.
func (r *ProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM projects
		 WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает проект пользователя по идентификатору.
func (r *ProjectRepository) GetByID(ctx context.Context, userID, projectID uuid.UUID) (models.Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	))
}

// ListByUser возвращает проекты пользователя, новые первыми.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
