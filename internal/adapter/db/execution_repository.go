package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/barscka/backend-pomodoro-task/internal/core/domain"
	"github.com/barscka/backend-pomodoro-task/internal/core/ports"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"

	// MySQL error 1062: duplicate entry for a unique key. Raised when two
	// concurrent starts race past the schedule-existence check; the loser is
	// mapped to the already-running outcome.
	mysqlErrDuplicateEntry = 1062
)

const countStartedOnQuery = `
SELECT COUNT(*)
FROM histories h
JOIN activities a ON a.id = h.activity_id
WHERE a.category_id = ? AND DATE(h.start_time) = ?;
`

const countsByCategoryQuery = `
SELECT a.category_id AS category_id, COUNT(*) AS executions
FROM histories h
JOIN activities a ON a.id = h.activity_id
WHERE a.category_id IS NOT NULL AND DATE(h.start_time) = ?
GROUP BY a.category_id;
`

const completedActivityIDsQuery = `
SELECT DISTINCT activity_id
FROM histories
WHERE end_time IS NOT NULL AND DATE(end_time) = ?;
`

// Starts from categories so that a category with a zero limit (or no
// executions yet today) is still reported as exhausted when its count
// reaches the limit.
const exhaustedCategoryIDsQuery = `
SELECT c.id
FROM categories c
LEFT JOIN activities a ON a.category_id = c.id
LEFT JOIN histories h ON h.activity_id = a.id AND DATE(h.start_time) = ?
GROUP BY c.id, c.max_daily_executions
HAVING COUNT(h.id) >= c.max_daily_executions;
`

const selectScheduleColumns = `
SELECT id, activity_id, scheduled_date, start_time, end_time, completed, created_at
FROM schedules
`

const selectHistoryColumns = `
SELECT id, activity_id, schedule_id, start_time, end_time, duration, notes
FROM histories
`

const listHistoryQuery = `
SELECT
  h.id,
  h.activity_id,
  h.schedule_id,
  h.start_time,
  h.end_time,
  h.duration,
  h.notes,
  a.name AS activity_name,
  a.category_id AS category_id,
  c.name AS category_name,
  c.color AS category_color,
  c.max_daily_executions AS category_max_daily,
  c.created_at AS category_created_at
FROM histories h
JOIN activities a ON a.id = h.activity_id
LEFT JOIN categories c ON c.id = a.category_id
ORDER BY h.start_time DESC;
`

type ExecutionRepository struct {
	db *sqlx.DB
}

type scheduleRow struct {
	ID            uint64         `db:"id"`
	ActivityID    uint64         `db:"activity_id"`
	ScheduledDate time.Time      `db:"scheduled_date"`
	StartTime     string         `db:"start_time"`
	EndTime       sql.NullString `db:"end_time"`
	Completed     bool           `db:"completed"`
	CreatedAt     time.Time      `db:"created_at"`
}

type historyRow struct {
	ID         uint64         `db:"id"`
	ActivityID uint64         `db:"activity_id"`
	ScheduleID uint64         `db:"schedule_id"`
	StartTime  time.Time      `db:"start_time"`
	EndTime    sql.NullTime   `db:"end_time"`
	Duration   sql.NullInt64  `db:"duration"`
	Notes      sql.NullString `db:"notes"`
}

type historyEntryRow struct {
	historyRow
	ActivityName      string         `db:"activity_name"`
	CategoryID        sql.NullInt64  `db:"category_id"`
	CategoryName      sql.NullString `db:"category_name"`
	CategoryColor     sql.NullString `db:"category_color"`
	CategoryMaxDaily  sql.NullInt64  `db:"category_max_daily"`
	CategoryCreatedAt sql.NullTime   `db:"category_created_at"`
}

var _ ports.ExecutionRepository = (*ExecutionRepository)(nil)

func NewExecutionRepository(db *sqlx.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

func (r *ExecutionRepository) CountStartedOn(ctx context.Context, categoryID uint64, day time.Time) (int, error) {
	return countStartedOn(ctx, r.db, categoryID, day)
}

func (r *ExecutionRepository) CountsByCategory(ctx context.Context, day time.Time) (map[uint64]int, error) {
	var rows []struct {
		CategoryID uint64 `db:"category_id"`
		Executions int    `db:"executions"`
	}
	if err := r.db.SelectContext(ctx, &rows, countsByCategoryQuery, day.UTC().Format(dateLayout)); err != nil {
		return nil, err
	}

	counts := make(map[uint64]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Executions
	}

	return counts, nil
}

func (r *ExecutionRepository) CompletedActivityIDs(ctx context.Context, day time.Time) (map[uint64]struct{}, error) {
	return selectIDSet(ctx, r.db, completedActivityIDsQuery, day)
}

func (r *ExecutionRepository) ExhaustedCategoryIDs(ctx context.Context, day time.Time) (map[uint64]struct{}, error) {
	return selectIDSet(ctx, r.db, exhaustedCategoryIDsQuery, day)
}

// StartExecution records the start of an execution: a new schedule for today
// plus its linked history record, created in one serializable transaction so
// the quota check and the insert cannot interleave with a concurrent start.
func (r *ExecutionRepository) StartExecution(ctx context.Context, activityID uint64, now time.Time) (domain.StartResult, error) {
	now = now.UTC()

	result, err := r.startExecutionTx(ctx, activityID, now)
	if isDuplicateEntry(err) {
		// Lost the race against a concurrent start for the same day; the
		// winner's schedule is the one to return.
		return r.existingExecution(ctx, r.db, activityID, now)
	}

	return result, err
}

func (r *ExecutionRepository) startExecutionTx(ctx context.Context, activityID uint64, now time.Time) (domain.StartResult, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return domain.StartResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	activity, err := getActivity(ctx, tx, activityID)
	if err != nil {
		return domain.StartResult{}, err
	}

	// At most one schedule per (activity, day). Whatever state it is in, a
	// second same-day start returns it unchanged.
	existing, err := r.existingExecution(ctx, tx, activityID, now)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.StartResult{}, err
	}

	executedToday := 0
	if activity.Category != nil {
		executedToday, err = countStartedOn(ctx, tx, activity.Category.ID, now)
		if err != nil {
			return domain.StartResult{}, err
		}
		if !activity.Category.CanExecuteMore(executedToday) {
			return domain.StartResult{}, domain.QuotaExceededError{
				CategoryName: activity.Category.Name,
				MaxDaily:     activity.Category.MaxDailyExecutions,
			}
		}
	}

	scheduleResult, err := tx.ExecContext(ctx,
		`INSERT INTO schedules (activity_id, scheduled_date, start_time, completed) VALUES (?, ?, ?, 0);`,
		activityID, now.Format(dateLayout), now.Format(clockLayout),
	)
	if err != nil {
		return domain.StartResult{}, err
	}
	scheduleID, err := scheduleResult.LastInsertId()
	if err != nil {
		return domain.StartResult{}, err
	}

	historyResult, err := tx.ExecContext(ctx,
		`INSERT INTO histories (activity_id, schedule_id, start_time) VALUES (?, ?, ?);`,
		activityID, scheduleID, now,
	)
	if err != nil {
		return domain.StartResult{}, err
	}
	historyID, err := historyResult.LastInsertId()
	if err != nil {
		return domain.StartResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.StartResult{}, err
	}

	day := truncateToDay(now)
	return domain.StartResult{
		Execution: domain.Execution{
			Schedule: domain.Schedule{
				ID:            uint64(scheduleID),
				ActivityID:    activityID,
				ScheduledDate: day,
				StartedAt:     now,
				Completed:     false,
				CreatedAt:     now,
			},
			History: domain.History{
				ID:         uint64(historyID),
				ActivityID: activityID,
				ScheduleID: uint64(scheduleID),
				StartedAt:  now,
			},
		},
		Activity: annotateActivity(activity, executedToday+1),
	}, nil
}

// existingExecution loads the schedule/history pair for (activity, day), or
// sql.ErrNoRows when none exists yet.
func (r *ExecutionRepository) existingExecution(ctx context.Context, q sqlx.QueryerContext, activityID uint64, now time.Time) (domain.StartResult, error) {
	var schedRow scheduleRow
	err := sqlx.GetContext(ctx, q, &schedRow,
		selectScheduleColumns+"WHERE activity_id = ? AND scheduled_date = ?;",
		activityID, now.Format(dateLayout),
	)
	if err != nil {
		return domain.StartResult{}, err
	}

	var histRow historyRow
	err = sqlx.GetContext(ctx, q, &histRow,
		selectHistoryColumns+"WHERE schedule_id = ?;", schedRow.ID)
	if err != nil {
		return domain.StartResult{}, err
	}

	activity, err := getActivity(ctx, q, activityID)
	if err != nil {
		return domain.StartResult{}, err
	}

	executedToday := 0
	if activity.Category != nil {
		executedToday, err = countStartedOn(ctx, q, activity.Category.ID, now)
		if err != nil {
			return domain.StartResult{}, err
		}
	}

	schedule, err := mapScheduleRowToDomain(schedRow)
	if err != nil {
		return domain.StartResult{}, err
	}

	return domain.StartResult{
		Execution: domain.Execution{
			Schedule: schedule,
			History:  mapHistoryRowToDomain(histRow),
		},
		Activity:       annotateActivity(activity, executedToday),
		AlreadyRunning: true,
	}, nil
}

// CompleteExecution closes a running execution: schedule, history and the
// activity's last_executed move together in one transaction. Completing an
// already-completed schedule is an idempotent read.
func (r *ExecutionRepository) CompleteExecution(ctx context.Context, scheduleID uint64, now time.Time) (domain.CompleteResult, error) {
	now = now.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.CompleteResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var schedRow scheduleRow
	err = tx.GetContext(ctx, &schedRow, selectScheduleColumns+"WHERE id = ? FOR UPDATE;", scheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompleteResult{}, domain.ErrScheduleNotFound
	}
	if err != nil {
		return domain.CompleteResult{}, err
	}

	var histRow historyRow
	err = tx.GetContext(ctx, &histRow, selectHistoryColumns+"WHERE schedule_id = ?;", scheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompleteResult{}, fmt.Errorf("schedule %d has no linked history record", scheduleID)
	}
	if err != nil {
		return domain.CompleteResult{}, err
	}

	schedule, err := mapScheduleRowToDomain(schedRow)
	if err != nil {
		return domain.CompleteResult{}, err
	}

	if schedule.Completed {
		return domain.CompleteResult{
			Execution:        domain.Execution{Schedule: schedule, History: mapHistoryRowToDomain(histRow)},
			AlreadyCompleted: true,
		}, nil
	}

	duration := schedule.DurationUntil(now)

	if _, err := tx.ExecContext(ctx,
		`UPDATE schedules SET end_time = ?, completed = 1 WHERE id = ?;`,
		now.Format(clockLayout), scheduleID,
	); err != nil {
		return domain.CompleteResult{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE histories SET end_time = ?, duration = ? WHERE schedule_id = ?;`,
		now, duration, scheduleID,
	); err != nil {
		return domain.CompleteResult{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE activities SET last_executed = ? WHERE id = ?;`,
		now, schedule.ActivityID,
	); err != nil {
		return domain.CompleteResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.CompleteResult{}, err
	}

	schedule.EndedAt = &now
	schedule.Completed = true

	history := mapHistoryRowToDomain(histRow)
	history.EndedAt = &now
	history.Duration = &duration

	return domain.CompleteResult{
		Execution: domain.Execution{Schedule: schedule, History: history},
	}, nil
}

func (r *ExecutionRepository) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var rows []historyEntryRow
	if err := r.db.SelectContext(ctx, &rows, listHistoryQuery); err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.HistoryEntry{
			History:      mapHistoryRowToDomain(row.historyRow),
			ActivityName: row.ActivityName,
		}
		if row.CategoryID.Valid && row.CategoryName.Valid {
			entry.Category = &domain.Category{
				ID:                 uint64(row.CategoryID.Int64),
				Name:               row.CategoryName.String,
				Color:              row.CategoryColor.String,
				MaxDailyExecutions: int(row.CategoryMaxDaily.Int64),
				CreatedAt:          row.CategoryCreatedAt.Time,
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func getActivity(ctx context.Context, q sqlx.QueryerContext, id uint64) (domain.Activity, error) {
	var row activityRow
	err := sqlx.GetContext(ctx, q, &row, selectActivityColumns+"WHERE a.id = ?;", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if err != nil {
		return domain.Activity{}, err
	}
	return mapActivityRowToDomain(row), nil
}

func countStartedOn(ctx context.Context, q sqlx.QueryerContext, categoryID uint64, day time.Time) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, countStartedOnQuery, categoryID, day.UTC().Format(dateLayout))
	return count, err
}

func selectIDSet(ctx context.Context, db *sqlx.DB, query string, day time.Time) (map[uint64]struct{}, error) {
	var ids []uint64
	if err := db.SelectContext(ctx, &ids, query, day.UTC().Format(dateLayout)); err != nil {
		return nil, err
	}

	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}

func annotateActivity(activity domain.Activity, executedToday int) domain.ActivitySummary {
	summary := domain.ActivitySummary{Activity: activity, CanExecute: true}
	if activity.Category != nil {
		summary.CanExecute = activity.Category.CanExecuteMore(executedToday)
		remaining := activity.Category.RemainingExecutions(executedToday)
		summary.RemainingExecutions = &remaining
	}
	return summary
}

func mapScheduleRowToDomain(row scheduleRow) (domain.Schedule, error) {
	startedAt, err := combineDateClock(row.ScheduledDate, row.StartTime)
	if err != nil {
		return domain.Schedule{}, err
	}

	schedule := domain.Schedule{
		ID:            row.ID,
		ActivityID:    row.ActivityID,
		ScheduledDate: truncateToDay(row.ScheduledDate),
		StartedAt:     startedAt,
		Completed:     row.Completed,
		CreatedAt:     row.CreatedAt,
	}

	if row.EndTime.Valid {
		endedAt, err := combineDateClock(row.ScheduledDate, row.EndTime.String)
		if err != nil {
			return domain.Schedule{}, err
		}
		schedule.EndedAt = &endedAt
	}

	return schedule, nil
}

func mapHistoryRowToDomain(row historyRow) domain.History {
	history := domain.History{
		ID:         row.ID,
		ActivityID: row.ActivityID,
		ScheduleID: row.ScheduleID,
		StartedAt:  row.StartTime,
	}

	if row.EndTime.Valid {
		value := row.EndTime.Time
		history.EndedAt = &value
	}
	if row.Duration.Valid {
		value := int(row.Duration.Int64)
		history.Duration = &value
	}
	if row.Notes.Valid {
		value := row.Notes.String
		history.Notes = &value
	}

	return history
}

// combineDateClock rebuilds a full timestamp from the DATE and TIME columns
// of a schedule row.
func combineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time column %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
