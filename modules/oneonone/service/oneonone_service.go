package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/utils"
	calendarentity "hr-dashboard-api/modules/calendar/entity"
	"hr-dashboard-api/modules/calendar/gateway"
	notificationdto "hr-dashboard-api/modules/notification/dto"
	notificationentity "hr-dashboard-api/modules/notification/entity"
	"hr-dashboard-api/modules/oneonone/dto"
	"hr-dashboard-api/modules/oneonone/entity"
	"hr-dashboard-api/modules/oneonone/mapper"
	"hr-dashboard-api/modules/oneonone/repository"
	profileentity "hr-dashboard-api/modules/profile/entity"

	"github.com/google/uuid"
)

// CalendarGateway is the write side of the Google Calendar client.
type CalendarGateway interface {
	CalendarID() string
	GetAccessToken(ctx context.Context) (string, error)
	CreateEvent(ctx context.Context, accessToken, calendarID string, in gateway.EventInput) (*gateway.CreatedEvent, error)
	UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, in gateway.EventInput) error
	DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error
}

type ProfileReader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]profileentity.Profile, error)
}

type Notifier interface {
	Create(ctx context.Context, req *notificationdto.CreateNotificationRequest) error
}

type OneOnOneService interface {
	CreateSlot(ctx context.Context, user *utils.TokenClaims, req *dto.CreateSlotRequest) (*entity.OneOnOneSlot, error)
	ListSlots(ctx context.Context, from, to time.Time) ([]entity.OneOnOneSlot, error)
	Book(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID) (*dto.BookResponse, error)
	Cancel(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID, remove bool) error
	Release(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID) error
	Reschedule(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID, req *dto.RescheduleRequest) (*entity.OneOnOneSlot, error)
}

// coordinator drives the slot state machine. The guarded updates in the repository
// are its only serialization point.
type coordinator struct {
	repo     repository.SlotRepository
	gateway  CalendarGateway
	profiles ProfileReader
	notifier Notifier
	loc      *time.Location
}

func NewOneOnOneService(repo repository.SlotRepository, gw CalendarGateway, profiles ProfileReader, notifier Notifier, loc *time.Location) OneOnOneService {
	if loc == nil {
		loc = time.UTC
	}
	return &coordinator{
		repo:     repo,
		gateway:  gw,
		profiles: profiles,
		notifier: notifier,
		loc:      loc,
	}
}

func (s *coordinator) CreateSlot(ctx context.Context, user *utils.TokenClaims, req *dto.CreateSlotRequest) (*entity.OneOnOneSlot, error) {
	if !user.CanManageSlots() {
		return nil, errors.NewAppError(errors.ErrForbidden, "only managers can publish slots", nil)
	}

	slot, err := mapper.ToSlotEntity(req, user.UserID)
	if err != nil {
		return nil, err
	}
	if !slot.StartAt.After(time.Now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slot must start in the future", nil)
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create slot", err)
	}
	logger.Info("OneOnOneService:CreateSlot:Success", "slot_id", created.ID, "organizer_id", user.UserID)
	return created, nil
}

func (s *coordinator) ListSlots(ctx context.Context, from, to time.Time) ([]entity.OneOnOneSlot, error) {
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must be after from", nil)
	}
	slots, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list slots", err)
	}
	return slots, nil
}

// Book claims the slot, creates the Google event and confirms. Any failure after the
// claim puts the slot back to open before returning.
func (s *coordinator) Book(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID) (*dto.BookResponse, error) {
	logger.Info("OneOnOneService:Book:Start", "slot_id", slotID, "user_id", user.UserID)

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.OrganizerID == user.UserID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "you cannot book your own slot", nil)
	}

	claimed, err := s.repo.Claim(ctx, slotID, user.UserID)
	if err != nil {
		if stderrors.Is(err, repository.ErrStateConflict) {
			logger.Warn("OneOnOneService:Book:Conflict", "slot_id", slotID, "user_id", user.UserID)
			return nil, errors.NewAppError(errors.ErrSlotUnavailable, "slot is no longer available", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to claim slot", err)
	}

	organizer, employee, err := s.parties(ctx, claimed.OrganizerID, user)
	if err != nil {
		s.rollbackClaim(ctx, slotID, user.UserID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load participant profiles", err)
	}

	token, err := s.gateway.GetAccessToken(ctx)
	if err != nil {
		s.rollbackClaim(ctx, slotID, user.UserID)
		return nil, errors.NewAppError(errors.ErrCalendarNotConnected, "Google Calendar is not connected", err)
	}

	created, err := s.gateway.CreateEvent(ctx, token, s.gateway.CalendarID(), s.eventInput(claimed, organizer, employee))
	if err != nil {
		s.rollbackClaim(ctx, slotID, user.UserID)
		return nil, errors.NewAppError(errors.ErrCalendarCreateFailed, "failed to create calendar event", err)
	}

	booked, err := s.repo.ConfirmBooking(ctx, slotID, user.UserID, created.MeetingURL, created.ID)
	if err != nil {
		logger.Error("OneOnOneService:Book:ConfirmError", "slot_id", slotID, "event_id", created.ID, "error", err)
		s.deleteRemote(ctx, token, created.ID)
		s.rollbackClaim(ctx, slotID, user.UserID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to confirm booking", err)
	}

	s.notify(ctx, booked.OrganizerID, notificationentity.TypeSlotBooked,
		"One-on-one booked",
		fmt.Sprintf("%s booked your slot on %s", displayName(employee), s.formatStart(booked.StartAt)),
		booked)

	logger.Info("OneOnOneService:Book:Success", "slot_id", slotID, "user_id", user.UserID, "event_id", created.ID)
	return &dto.BookResponse{
		Success:       true,
		MeetingURL:    created.MeetingURL,
		GoogleEventID: created.ID,
	}, nil
}

// Cancel is admin only. The remote event is removed best-effort before the local
// transition; local state decides availability.
func (s *coordinator) Cancel(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID, remove bool) error {
	if !user.IsAdmin() {
		return errors.NewAppError(errors.ErrForbidden, "only admins can cancel slots", nil)
	}

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.Status == entity.StatusBooking {
		return errors.NewAppError(errors.ErrInvalidSlotState, "slot is being booked, try again shortly", nil)
	}

	s.deleteRemoteBestEffort(ctx, slot)

	if remove {
		if err := s.repo.Delete(ctx, slotID); err != nil {
			if stderrors.Is(err, repository.ErrStateConflict) {
				return errors.NewAppError(errors.ErrInvalidSlotState, "slot is being booked, try again shortly", err)
			}
			return errors.NewAppError(errors.ErrInternalServer, "failed to delete slot", err)
		}
	} else if _, err := s.repo.Cancel(ctx, slotID); err != nil {
		if stderrors.Is(err, repository.ErrStateConflict) {
			return errors.NewAppError(errors.ErrInvalidSlotState, "slot cannot be cancelled in its current state", err)
		}
		return errors.NewAppError(errors.ErrInternalServer, "failed to cancel slot", err)
	}

	if slot.BookedBy != nil {
		s.notify(ctx, *slot.BookedBy, notificationentity.TypeSlotCancelled,
			"One-on-one cancelled",
			fmt.Sprintf("Your one-on-one on %s was cancelled", s.formatStart(slot.StartAt)),
			slot)
	}
	logger.Info("OneOnOneService:Cancel:Success", "slot_id", slotID, "removed", remove)
	return nil
}

// Release gives a booked slot back. Only the current holder may do it.
func (s *coordinator) Release(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID) error {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if !slot.IsHeldBy(user.UserID) {
		return errors.NewAppError(errors.ErrForbidden, "only the person who booked this slot can release it", nil)
	}
	if slot.Status != entity.StatusBooked {
		return errors.NewAppError(errors.ErrInvalidSlotState, "slot is not booked", nil)
	}

	s.deleteRemoteBestEffort(ctx, slot)

	if _, err := s.repo.Release(ctx, slotID, user.UserID); err != nil {
		if stderrors.Is(err, repository.ErrStateConflict) {
			return errors.NewAppError(errors.ErrInvalidSlotState, "slot is not booked by you", err)
		}
		return errors.NewAppError(errors.ErrInternalServer, "failed to release slot", err)
	}

	s.notify(ctx, slot.OrganizerID, notificationentity.TypeSlotReleased,
		"One-on-one released",
		fmt.Sprintf("Your slot on %s is open again", s.formatStart(slot.StartAt)),
		slot)
	logger.Info("OneOnOneService:Release:Success", "slot_id", slotID, "user_id", user.UserID)
	return nil
}

// Reschedule moves the Google event first. If that fails the slot row is not touched.
func (s *coordinator) Reschedule(ctx context.Context, user *utils.TokenClaims, slotID uuid.UUID, req *dto.RescheduleRequest) (*entity.OneOnOneSlot, error) {
	if !user.CanManageSlots() {
		return nil, errors.NewAppError(errors.ErrForbidden, "only managers can reschedule slots", nil)
	}

	startAt, endAt, err := mapper.ToSlotTimes(req, s.loc)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == entity.StatusCancelled || slot.Status == entity.StatusBooking {
		return nil, errors.NewAppError(errors.ErrInvalidSlotState, "slot cannot be rescheduled in its current state", nil)
	}

	location := slot.Location
	if req.Location != nil {
		location = req.Location
		if *location == "" {
			location = nil
		}
	}

	if slot.GoogleEventID != nil && *slot.GoogleEventID != "" {
		token, err := s.gateway.GetAccessToken(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCalendarNotConnected, "Google Calendar is not connected", err)
		}
		in := gateway.EventInput{Start: startAt, End: endAt, TimeZone: s.loc.String()}
		if location != nil {
			in.Location = *location
		}
		if err := s.gateway.UpdateEvent(ctx, token, s.gateway.CalendarID(), *slot.GoogleEventID, in); err != nil {
			return nil, errors.NewAppError(errors.ErrCalendarUpdateFailed, "failed to update calendar event", err)
		}
	}

	updated, err := s.repo.UpdateTimes(ctx, slotID, startAt, endAt, location)
	if err != nil {
		if stderrors.Is(err, repository.ErrStateConflict) {
			return nil, errors.NewAppError(errors.ErrInvalidSlotState, "slot changed while rescheduling", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reschedule slot", err)
	}

	if updated.BookedBy != nil {
		s.notify(ctx, *updated.BookedBy, notificationentity.TypeSlotRescheduled,
			"One-on-one rescheduled",
			fmt.Sprintf("Your one-on-one moved to %s", s.formatStart(updated.StartAt)),
			updated)
	}
	logger.Info("OneOnOneService:Reschedule:Success", "slot_id", slotID, "start_at", startAt)
	return updated, nil
}

func (s *coordinator) parties(ctx context.Context, organizerID uuid.UUID, user *utils.TokenClaims) (*profileentity.Profile, *profileentity.Profile, error) {
	found, err := s.profiles.GetByIDs(ctx, []uuid.UUID{organizerID, user.UserID})
	if err != nil {
		return nil, nil, err
	}

	organizer := &profileentity.Profile{}
	organizer.ID = organizerID
	employee := &profileentity.Profile{Email: user.Email}
	employee.ID = user.UserID
	for i := range found {
		switch found[i].ID {
		case organizerID:
			organizer = &found[i]
		case user.UserID:
			employee = &found[i]
		}
	}
	return organizer, employee, nil
}

func (s *coordinator) eventInput(slot *entity.OneOnOneSlot, organizer, employee *profileentity.Profile) gateway.EventInput {
	in := gateway.EventInput{
		Summary:     fmt.Sprintf("1:1 %s / %s", displayName(organizer), displayName(employee)),
		Description: "One-on-one booked from the HR dashboard.",
		Start:       slot.StartAt,
		End:         slot.EndAt,
		TimeZone:    s.loc.String(),
		CreateMeet:  slot.Mode == entity.ModeOnline,
	}
	if slot.Mode == entity.ModeOffline && slot.Location != nil {
		in.Location = *slot.Location
	}
	for _, p := range []*profileentity.Profile{organizer, employee} {
		if p.Email == "" {
			continue
		}
		in.Attendees = append(in.Attendees, calendarentity.Attendee{Email: p.Email, DisplayName: p.FullName})
	}
	return in
}

// detached survives the caller's cancellation so compensations still run.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultTimeout)
}

func (s *coordinator) rollbackClaim(ctx context.Context, slotID, userID uuid.UUID) {
	ctx, cancel := detached(ctx)
	defer cancel()

	if err := s.repo.ReleaseClaim(ctx, slotID, userID); err != nil {
		logger.Error("OneOnOneService:RollbackClaim:Error", "slot_id", slotID, "user_id", userID, "error", err)
		return
	}
	logger.Warn("OneOnOneService:RollbackClaim:Success", "slot_id", slotID, "user_id", userID)
}

func (s *coordinator) deleteRemote(ctx context.Context, token, eventID string) {
	ctx, cancel := detached(ctx)
	defer cancel()

	if err := s.gateway.DeleteEvent(ctx, token, s.gateway.CalendarID(), eventID); err != nil {
		logger.Error("OneOnOneService:DeleteRemote:Orphaned", "event_id", eventID, "error", err)
	}
}

// deleteRemoteBestEffort never fails the caller. A failure leaves an orphaned
// Google event, which is logged for manual cleanup.
func (s *coordinator) deleteRemoteBestEffort(ctx context.Context, slot *entity.OneOnOneSlot) {
	if slot.GoogleEventID == nil || *slot.GoogleEventID == "" {
		return
	}
	token, err := s.gateway.GetAccessToken(ctx)
	if err != nil {
		logger.Error("OneOnOneService:DeleteRemote:Orphaned", "slot_id", slot.ID, "event_id", *slot.GoogleEventID, "error", err)
		return
	}
	s.deleteRemote(ctx, token, *slot.GoogleEventID)
}

// notify is fire-and-log: the booking outcome never depends on it.
func (s *coordinator) notify(ctx context.Context, userID uuid.UUID, kind, title, message string, slot *entity.OneOnOneSlot) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Create(ctx, &notificationdto.CreateNotificationRequest{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
		Data: map[string]any{
			"slotId":  slot.ID.String(),
			"startAt": slot.StartAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		logger.Warn("OneOnOneService:Notify:Error", "user_id", userID, "type", kind, "error", err)
	}
}

func (s *coordinator) formatStart(t time.Time) string {
	return t.In(s.loc).Format("Mon 02 Jan 2006 15:04")
}

func displayName(p *profileentity.Profile) string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	return p.ID.String()
}
