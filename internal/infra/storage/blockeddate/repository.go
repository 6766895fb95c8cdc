package blockeddate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EVT-SchedulingService/internal/domain"
	"github.com/m04kA/EVT-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/EVT-SchedulingService/pkg/psqlbuilder"
)

const blockedDatesTable = "blocked_dates"

// Repository репозиторий для работы с блокировками дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Block помечает дату полностью заблокированной
// Повторная блокировка той же даты обновляет причину
func (r *Repository) Block(ctx context.Context, date time.Time, reason *string) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blockedDatesTable).
		Columns("blocked_date", "reason").
		Values(date, reason).
		Suffix("ON CONFLICT (blocked_date) DO UPDATE SET reason = EXCLUDED.reason").
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Block - build insert query: %v", ErrBuildQuery, err)
	}

	blocked := domain.BlockedDate{Date: date, Reason: reason}
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Block - execute insert: %v", ErrExecQuery, err)
	}
	blocked.CreatedAt = createdAt.Time

	return &blocked, nil
}

// Unblock снимает блокировку даты
func (r *Repository) Unblock(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(blockedDatesTable).
		Where(squirrel.Eq{"blocked_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Unblock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Unblock - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Unblock - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// GetByDate возвращает блокировку на указанную дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From(blockedDatesTable).
		Where(squirrel.Eq{"blocked_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var blocked domain.BlockedDate
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&blocked.ID,
		&blocked.Date,
		&blocked.Reason,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan blocked date: %v", ErrScanRow, err)
	}
	blocked.CreatedAt = createdAt.Time

	return &blocked, nil
}

// ListRange возвращает блокировки в диапазоне дат [from, to] включительно
func (r *Repository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From(blockedDatesTable).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		Where(squirrel.LtOrEq{"blocked_date": to}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var blocked domain.BlockedDate
		var createdAt sql.NullTime
		if err := rows.Scan(&blocked.ID, &blocked.Date, &blocked.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan blocked date: %v", ErrScanRow, err)
		}
		blocked.CreatedAt = createdAt.Time
		result = append(result, &blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows iteration: %v", ErrExecQuery, err)
	}

	return result, nil
}
