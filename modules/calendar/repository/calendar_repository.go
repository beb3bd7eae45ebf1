package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/modules/calendar/entity"
)

type CalendarRepository interface {
	Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error)
	GetByID(ctx context.Context, id string) (*entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	// ListForRange returns one-off events overlapping [start, end] and every
	// recurring template that starts on or before end.
	ListForRange(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, error)
}

type calendarRepository struct {
	db database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) CalendarRepository {
	return &calendarRepository{db: db}
}

const eventColumns = `
	id::text AS id, title, COALESCE(description, '') AS description, COALESCE(location, '') AS location,
	start_at, end_at, all_day, recurrence_rule, created_by, created_at, updated_at`

func (r *calendarRepository) Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	query := `
		INSERT INTO calendar_events (title, description, location, start_at, end_at, all_day, recurrence_rule, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var created entity.CalendarEvent
	err := r.db.GetContext(ctx, &created, query,
		event.Title, event.Description, event.Location, event.Start, event.End,
		event.AllDay, event.RecurrenceRule, event.CreatedBy,
	)
	if err != nil {
		logger.Error("CalendarRepository:Create:Error", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *calendarRepository) GetByID(ctx context.Context, id string) (*entity.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`

	var event entity.CalendarEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", err)
		}
		logger.Error("CalendarRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepository) Update(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	query := `
		UPDATE calendar_events
		SET title = $2, description = $3, location = $4, start_at = $5, end_at = $6,
			all_day = $7, recurrence_rule = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.CalendarEvent
	err := r.db.GetContext(ctx, &updated, query,
		event.ID, event.Title, event.Description, event.Location, event.Start, event.End,
		event.AllDay, event.RecurrenceRule,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", err)
		}
		logger.Error("CalendarRepository:Update:Error", "id", event.ID, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *calendarRepository) Delete(ctx context.Context, id string) error {
	var deleted string
	err := r.db.GetContext(ctx, &deleted, `DELETE FROM calendar_events WHERE id = $1 RETURNING id::text`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "calendar event not found", err)
		}
		logger.Error("CalendarRepository:Delete:Error", "id", id, "error", err)
		return err
	}
	return nil
}

func (r *calendarRepository) ListForRange(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE (recurrence_rule IS NULL AND start_at <= $2 AND end_at >= $1)
		   OR (recurrence_rule IS NOT NULL AND start_at <= $2)
		ORDER BY start_at`

	var events []entity.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query, start, end); err != nil {
		logger.Error("CalendarRepository:ListForRange:Error", "error", err)
		return nil, err
	}
	return events, nil
}
