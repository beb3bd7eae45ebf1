package mapper

import (
	"strings"
	"time"

	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/modules/oneonone/dto"
	"hr-dashboard-api/modules/oneonone/entity"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func ToSlotEntity(req *dto.CreateSlotRequest, organizerID uuid.UUID) (*entity.OneOnOneSlot, error) {
	mode := entity.SlotMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if mode == "" {
		mode = entity.ModeOnline
	}
	if !mode.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "mode must be online or offline", nil)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "endAt must be after startAt", nil)
	}

	return &entity.OneOnOneSlot{
		OrganizerID: organizerID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Mode:        mode,
		Location:    trimmed(req.Location),
		Status:      entity.StatusOpen,
	}, nil
}

// ToSlotTimes resolves a reschedule request to absolute start and end instants in loc.
func ToSlotTimes(req *dto.RescheduleRequest, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}
	start, err := time.Parse(timeLayout, strings.TrimSpace(req.StartTime))
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "startTime must be HH:MM", err)
	}
	end, err := time.Parse(timeLayout, strings.TrimSpace(req.EndTime))
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "endTime must be HH:MM", err)
	}

	startAt := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, loc)
	endAt := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, loc)
	if !endAt.After(startAt) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "endTime must be after startTime", nil)
	}
	return startAt, endAt, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
