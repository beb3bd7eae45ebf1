package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/modules/oneonone/entity"

	"github.com/google/uuid"
)

// ErrStateConflict means a guarded update matched no row: the slot was not in
// the state the transition requires.
var ErrStateConflict = stderrors.New("slot state conflict")

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.OneOnOneSlot) (*entity.OneOnOneSlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error)
	List(ctx context.Context, from, to time.Time) ([]entity.OneOnOneSlot, error)
	// Claim moves an open, future slot to booking for userID.
	Claim(ctx context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error)
	// ReleaseClaim undoes Claim.
	ReleaseClaim(ctx context.Context, id, userID uuid.UUID) error
	ConfirmBooking(ctx context.Context, id, userID uuid.UUID, meetingURL, googleEventID string) (*entity.OneOnOneSlot, error)
	Cancel(ctx context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error)
	Release(ctx context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error)
	UpdateTimes(ctx context.Context, id uuid.UUID, startAt, endAt time.Time, location *string) (*entity.OneOnOneSlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type slotRepository struct {
	db database.IDatabase
}

func NewSlotRepository(db database.IDatabase) SlotRepository {
	return &slotRepository{db: db}
}

const slotColumns = `
	id, organizer_id, start_at, end_at, mode, location, status, booked_by, booked_at,
	meeting_url, google_event_id, created_at, updated_at`

func (r *slotRepository) Create(ctx context.Context, slot *entity.OneOnOneSlot) (*entity.OneOnOneSlot, error) {
	query := `
		INSERT INTO one_on_one_slots (organizer_id, start_at, end_at, mode, location, status)
		VALUES ($1, $2, $3, $4, $5, 'open')
		RETURNING ` + slotColumns

	var created entity.OneOnOneSlot
	err := r.db.GetContext(ctx, &created, query, slot.OrganizerID, slot.StartAt, slot.EndAt, slot.Mode, slot.Location)
	if err != nil {
		logger.Error("SlotRepository:Create:Error", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *slotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error) {
	var slot entity.OneOnOneSlot
	err := r.db.GetContext(ctx, &slot, `SELECT `+slotColumns+` FROM one_on_one_slots WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", err)
		}
		logger.Error("SlotRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) List(ctx context.Context, from, to time.Time) ([]entity.OneOnOneSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM one_on_one_slots
		WHERE start_at < $2 AND end_at > $1 AND status <> 'cancelled'
		ORDER BY start_at ASC`

	slots := []entity.OneOnOneSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, from, to); err != nil {
		logger.Error("SlotRepository:List:Error", "error", err)
		return nil, err
	}
	return slots, nil
}

// guarded runs an UPDATE or DELETE ... RETURNING whose WHERE clause encodes the allowed source
// state. No row means the precondition failed.
func (r *slotRepository) guarded(ctx context.Context, op, query string, args ...any) (*entity.OneOnOneSlot, error) {
	var slot entity.OneOnOneSlot
	if err := r.db.GetContext(ctx, &slot, query, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateConflict
		}
		logger.Error("SlotRepository:"+op+":Error", "error", err)
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Claim(ctx context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error) {
	query := `
		UPDATE one_on_one_slots
		SET status = 'booking', booked_by = $2, booked_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'open' AND start_at > NOW()
		RETURNING ` + slotColumns
	return r.guarded(ctx, "Claim", query, id, userID)
}

func (r *slotRepository) ReleaseClaim(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE one_on_one_slots
		SET status = 'open', booked_by = NULL, booked_at = NULL, meeting_url = NULL,
			google_event_id = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'booking' AND booked_by = $2
		RETURNING ` + slotColumns
	_, err := r.guarded(ctx, "ReleaseClaim", query, id, userID)
	return err
}

func (r *slotRepository) ConfirmBooking(ctx context.Context, id, userID uuid.UUID, meetingURL, googleEventID string) (*entity.OneOnOneSlot, error) {
	query := `
		UPDATE one_on_one_slots
		SET status = 'booked', meeting_url = NULLIF($3, ''), google_event_id = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $1 AND status = 'booking' AND booked_by = $2
		RETURNING ` + slotColumns
	return r.guarded(ctx, "ConfirmBooking", query, id, userID, meetingURL, googleEventID)
}

func (r *slotRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error) {
	query := `
		UPDATE one_on_one_slots
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'booked')
		RETURNING ` + slotColumns
	return r.guarded(ctx, "Cancel", query, id)
}

func (r *slotRepository) Release(ctx context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error) {
	query := `
		UPDATE one_on_one_slots
		SET status = 'open', booked_by = NULL, booked_at = NULL, meeting_url = NULL,
			google_event_id = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'booked' AND booked_by = $2
		RETURNING ` + slotColumns
	return r.guarded(ctx, "Release", query, id, userID)
}

func (r *slotRepository) UpdateTimes(ctx context.Context, id uuid.UUID, startAt, endAt time.Time, location *string) (*entity.OneOnOneSlot, error) {
	query := `
		UPDATE one_on_one_slots
		SET start_at = $2, end_at = $3, location = $4, updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'booked')
		RETURNING ` + slotColumns
	return r.guarded(ctx, "UpdateTimes", query, id, startAt, endAt, location)
}

// Delete removes the row unless a booking is in flight.
func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM one_on_one_slots
		WHERE id = $1 AND status <> 'booking'
		RETURNING ` + slotColumns
	_, err := r.guarded(ctx, "Delete", query, id)
	return err
}
