package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
)

type CategoryRepository struct {
	db *sqlx.DB
}

type categoryRow struct {
	ID                 uint64         `db:"id"`
	Name               string         `db:"name"`
	Description        sql.NullString `db:"description"`
	Color              string         `db:"color"`
	MaxDailyExecutions int            `db:"max_daily_executions"`
	CreatedAt          time.Time      `db:"created_at"`
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Get(ctx context.Context, id uint64) (domain.Category, error) {
	var row categoryRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, description, color, max_daily_executions, created_at FROM categories WHERE id = ?;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, err
	}

	return mapCategoryRowToDomain(row), nil
}

func mapCategoryRowToDomain(row categoryRow) domain.Category {
	category := domain.Category{
		ID:                 row.ID,
		Name:               row.Name,
		Color:              row.Color,
		MaxDailyExecutions: row.MaxDailyExecutions,
		CreatedAt:          row.CreatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		category.Description = &value
	}

	return category
}
