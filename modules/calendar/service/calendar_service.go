package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/utils"
	"hr-dashboard-api/modules/calendar/dto"
	"hr-dashboard-api/modules/calendar/entity"
	"hr-dashboard-api/modules/calendar/mapper"
	"hr-dashboard-api/modules/calendar/recurrence"
	"hr-dashboard-api/modules/calendar/repository"
)

// Gateway is the part of the Google Calendar client the calendar view needs.
type Gateway interface {
	IsConnected() bool
	CalendarID() string
	GetAccessToken(ctx context.Context) (string, error)
	ListEvents(ctx context.Context, accessToken, calendarID string, timeMin, timeMax time.Time) ([]entity.CalendarEvent, error)
}

type CalendarService interface {
	GetEvents(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, error)
	GetStatus(ctx context.Context) *dto.StatusResponse
	CreateEvent(ctx context.Context, user *utils.TokenClaims, req *dto.EventRequest) (*entity.CalendarEvent, error)
	UpdateEvent(ctx context.Context, user *utils.TokenClaims, id string, req *dto.EventRequest) (*entity.CalendarEvent, error)
	DeleteEvent(ctx context.Context, user *utils.TokenClaims, id string) error
}

type calendarService struct {
	repo     repository.CalendarRepository
	gateway  Gateway
	expander *recurrence.Expander
}

func NewCalendarService(repo repository.CalendarRepository, gateway Gateway, expander *recurrence.Expander) CalendarService {
	return &calendarService{
		repo:     repo,
		gateway:  gateway,
		expander: expander,
	}
}

// GetEvents merges expanded local events with the shared Google Calendar. A Google
// failure only drops the remote half of the view.
func (s *calendarService) GetEvents(ctx context.Context, start, end time.Time) ([]entity.CalendarEvent, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	stored, err := s.repo.ListForRange(ctx, start, end)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load calendar events", err)
	}

	events := make([]entity.CalendarEvent, 0, len(stored))
	for _, tmpl := range stored {
		tmpl.Source = entity.SourceLocal
		tmpl.Kind = entity.KindEvent
		tmpl.Color = constants.ColorLocal
		tmpl.Bookable = true
		events = append(events, s.expander.Expand(tmpl, start, end)...)
	}

	events = append(events, s.remoteEvents(ctx, start, end)...)

	slices.SortStableFunc(events, func(a, b entity.CalendarEvent) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return events, nil
}

func (s *calendarService) remoteEvents(ctx context.Context, start, end time.Time) []entity.CalendarEvent {
	if s.gateway == nil || !s.gateway.IsConnected() {
		return nil
	}

	token, err := s.gateway.GetAccessToken(ctx)
	if err != nil {
		logger.Warn("CalendarService:GetEvents:TokenError", "error", err)
		return nil
	}

	remote, err := s.gateway.ListEvents(ctx, token, s.gateway.CalendarID(), start, end)
	if err != nil {
		logger.Warn("CalendarService:GetEvents:RemoteError", "error", err)
		return nil
	}
	return remote
}

func (s *calendarService) GetStatus(_ context.Context) *dto.StatusResponse {
	if s.gateway == nil {
		return &dto.StatusResponse{CalendarID: constants.DefaultCalendarID}
	}
	return &dto.StatusResponse{
		IsConnected: s.gateway.IsConnected(),
		CalendarID:  s.gateway.CalendarID(),
	}
}

func (s *calendarService) CreateEvent(ctx context.Context, user *utils.TokenClaims, req *dto.EventRequest) (*entity.CalendarEvent, error) {
	event, err := toEvent(req)
	if err != nil {
		return nil, err
	}
	createdBy := user.UserID
	event.CreatedBy = &createdBy

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create calendar event", err)
	}

	logger.Info("CalendarService:CreateEvent:Success", "event_id", created.ID, "recurring", created.IsRecurring())
	return created, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, user *utils.TokenClaims, id string, req *dto.EventRequest) (*entity.CalendarEvent, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(user, existing) {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the creator or an admin can edit this event", nil)
	}

	event, err := toEvent(req)
	if err != nil {
		return nil, err
	}
	event.ID = existing.ID
	event.CreatedBy = existing.CreatedBy

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, user *utils.TokenClaims, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(user, existing) {
		return errors.NewAppError(errors.ErrForbidden, "only the creator or an admin can delete this event", nil)
	}
	return s.repo.Delete(ctx, id)
}

func canEdit(user *utils.TokenClaims, event *entity.CalendarEvent) bool {
	if user.IsAdmin() {
		return true
	}
	return event.CreatedBy != nil && *event.CreatedBy == user.UserID
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewAppError(errors.ErrInvalidInput, "start and end are required", nil)
	}
	if end.Before(start) {
		return errors.NewAppError(errors.ErrInvalidInput, "end must not be before start", nil)
	}
	if end.Sub(start) > constants.MaxEventWindow {
		return errors.NewAppError(errors.ErrInvalidInput, "requested window is too large", nil)
	}
	return nil
}

func toEvent(req *dto.EventRequest) (*entity.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start and end are required", nil)
	}
	if req.End.Before(req.Start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end must not be before start", nil)
	}

	rule, err := mapper.ToRule(req.Recurrence)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	return &entity.CalendarEvent{
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		Location:       strings.TrimSpace(req.Location),
		Start:          req.Start,
		End:            req.End,
		AllDay:         req.AllDay,
		RecurrenceRule: rule,
	}, nil
}
