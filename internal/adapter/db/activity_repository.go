package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
)

const selectActivityColumns = `
SELECT
  a.id,
  a.name,
  a.description,
  a.duration,
  a.priority,
  a.category_id,
  a.last_executed,
  a.created_at,
  c.name AS category_name,
  c.color AS category_color,
  c.max_daily_executions AS category_max_daily,
  c.created_at AS category_created_at
FROM activities a
LEFT JOIN categories c ON c.id = a.category_id
`

type ActivityRepository struct {
	db *sqlx.DB
}

type activityRow struct {
	ID                uint64         `db:"id"`
	Name              string         `db:"name"`
	Description       sql.NullString `db:"description"`
	Duration          int            `db:"duration"`
	Priority          int            `db:"priority"`
	CategoryID        sql.NullInt64  `db:"category_id"`
	LastExecuted      sql.NullTime   `db:"last_executed"`
	CreatedAt         time.Time      `db:"created_at"`
	CategoryName      sql.NullString `db:"category_name"`
	CategoryColor     sql.NullString `db:"category_color"`
	CategoryMaxDaily  sql.NullInt64  `db:"category_max_daily"`
	CategoryCreatedAt sql.NullTime   `db:"category_created_at"`
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) List(ctx context.Context, categoryID *uint64) ([]domain.Activity, error) {
	query := selectActivityColumns
	args := []interface{}{}
	if categoryID != nil {
		query += "WHERE a.category_id = ?\n"
		args = append(args, *categoryID)
	}
	query += "ORDER BY a.name;"

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, mapActivityRowToDomain(row))
	}

	return activities, nil
}

func (r *ActivityRepository) Get(ctx context.Context, id uint64) (domain.Activity, error) {
	var row activityRow
	err := r.db.GetContext(ctx, &row, selectActivityColumns+"WHERE a.id = ?;", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if err != nil {
		return domain.Activity{}, err
	}

	return mapActivityRowToDomain(row), nil
}

func (r *ActivityRepository) Create(ctx context.Context, input domain.CreateActivityInput) (domain.Activity, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (name, description, duration, priority, category_id) VALUES (?, ?, ?, ?, ?);`,
		input.Name,
		nullString(input.Description),
		input.Duration,
		input.Priority,
		nullUint64(input.CategoryID),
	)
	if err != nil {
		return domain.Activity{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Activity{}, err
	}

	return r.Get(ctx, uint64(id))
}

func (r *ActivityRepository) Update(ctx context.Context, id uint64, input domain.UpdateActivityInput) (domain.Activity, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	if input.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *input.Name)
	}
	if input.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, nullString(input.Description))
	}
	if input.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *input.Duration)
	}
	if input.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *input.Priority)
	}
	if input.CategoryIDSet {
		sets = append(sets, "category_id = ?")
		args = append(args, nullUint64(input.CategoryID))
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE activities SET %s WHERE id = ?;", strings.Join(sets, ", "))
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return domain.Activity{}, err
		}
	}

	return r.Get(ctx, id)
}

func (r *ActivityRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?;`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrActivityNotFound
	}

	return nil
}

func mapActivityRowToDomain(row activityRow) domain.Activity {
	activity := domain.Activity{
		ID:        row.ID,
		Name:      row.Name,
		Duration:  row.Duration,
		Priority:  row.Priority,
		CreatedAt: row.CreatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		activity.Description = &value
	}

	if row.LastExecuted.Valid {
		value := row.LastExecuted.Time
		activity.LastExecuted = &value
	}

	if row.CategoryID.Valid && row.CategoryName.Valid {
		activity.Category = &domain.Category{
			ID:                 uint64(row.CategoryID.Int64),
			Name:               row.CategoryName.String,
			Color:              row.CategoryColor.String,
			MaxDailyExecutions: int(row.CategoryMaxDaily.Int64),
			CreatedAt:          row.CategoryCreatedAt.Time,
		}
	}

	return activity
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullUint64(value *uint64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
