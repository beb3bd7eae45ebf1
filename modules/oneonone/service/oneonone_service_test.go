package service

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/utils"
	"hr-dashboard-api/modules/calendar/gateway"
	notificationdto "hr-dashboard-api/modules/notification/dto"
	"hr-dashboard-api/modules/oneonone/dto"
	"hr-dashboard-api/modules/oneonone/entity"
	"hr-dashboard-api/modules/oneonone/repository"
	profileentity "hr-dashboard-api/modules/profile/entity"

	"github.com/google/uuid"
)

// fakeSlotRepo applies the same preconditions as the SQL guards under one mutex.
type fakeSlotRepo struct {
	mu         sync.Mutex
	slots      map[uuid.UUID]*entity.OneOnOneSlot
	confirmErr error
	deleted    []uuid.UUID
	// beforeDelete runs under the lock, simulating a write that lands between
	// the service's read and its delete.
	beforeDelete func(*entity.OneOnOneSlot)
}

func newFakeSlotRepo(slots ...*entity.OneOnOneSlot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: map[uuid.UUID]*entity.OneOnOneSlot{}}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) get(id uuid.UUID) *entity.OneOnOneSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil
	}
	c := *s
	return &c
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *entity.OneOnOneSlot) (*entity.OneOnOneSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *slot
	c.ID = uuid.New()
	c.Status = entity.StatusOpen
	r.slots[c.ID] = &c
	out := c
	return &out, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error) {
	if s := r.get(id); s != nil {
		return s, nil
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
}

func (r *fakeSlotRepo) List(_ context.Context, from, to time.Time) ([]entity.OneOnOneSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.OneOnOneSlot
	for _, s := range r.slots {
		if s.StartAt.Before(to) && s.EndAt.After(from) && s.Status != entity.StatusCancelled {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) transition(id uuid.UUID, allowed func(*entity.OneOnOneSlot) bool, apply func(*entity.OneOnOneSlot)) (*entity.OneOnOneSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || !allowed(s) {
		return nil, repository.ErrStateConflict
	}
	apply(s)
	c := *s
	return &c, nil
}

func clearBooking(s *entity.OneOnOneSlot) {
	s.Status = entity.StatusOpen
	s.BookedBy = nil
	s.BookedAt = nil
	s.MeetingURL = nil
	s.GoogleEventID = nil
}

func (r *fakeSlotRepo) Claim(_ context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error) {
	return r.transition(id,
		func(s *entity.OneOnOneSlot) bool { return s.Status == entity.StatusOpen && s.StartAt.After(time.Now()) },
		func(s *entity.OneOnOneSlot) {
			now := time.Now()
			s.Status = entity.StatusBooking
			s.BookedBy = &userID
			s.BookedAt = &now
		})
}

func (r *fakeSlotRepo) ReleaseClaim(ctx context.Context, id, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.transition(id,
		func(s *entity.OneOnOneSlot) bool { return s.Status == entity.StatusBooking && s.IsHeldBy(userID) },
		clearBooking)
	return err
}

func (r *fakeSlotRepo) ConfirmBooking(_ context.Context, id, userID uuid.UUID, meetingURL, googleEventID string) (*entity.OneOnOneSlot, error) {
	if r.confirmErr != nil {
		return nil, r.confirmErr
	}
	return r.transition(id,
		func(s *entity.OneOnOneSlot) bool { return s.Status == entity.StatusBooking && s.IsHeldBy(userID) },
		func(s *entity.OneOnOneSlot) {
			s.Status = entity.StatusBooked
			s.MeetingURL = &meetingURL
			s.GoogleEventID = &googleEventID
		})
}

func (r *fakeSlotRepo) Cancel(_ context.Context, id uuid.UUID) (*entity.OneOnOneSlot, error) {
	return r.transition(id,
		func(s *entity.OneOnOneSlot) bool {
			return s.Status == entity.StatusOpen || s.Status == entity.StatusBooked
		},
		func(s *entity.OneOnOneSlot) { s.Status = entity.StatusCancelled })
}

func (r *fakeSlotRepo) Release(_ context.Context, id, userID uuid.UUID) (*entity.OneOnOneSlot, error) {
	return r.transition(id,
		func(s *entity.OneOnOneSlot) bool { return s.Status == entity.StatusBooked && s.IsHeldBy(userID) },
		clearBooking)
}

func (r *fakeSlotRepo) UpdateTimes(_ context.Context, id uuid.UUID, startAt, endAt time.Time, location *string) (*entity.OneOnOneSlot, error) {
	return r.transition(id,
		func(s *entity.OneOnOneSlot) bool {
			return s.Status == entity.StatusOpen || s.Status == entity.StatusBooked
		},
		func(s *entity.OneOnOneSlot) {
			s.StartAt = startAt
			s.EndAt = endAt
			s.Location = location
		})
}

func (r *fakeSlotRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeDelete != nil {
		r.beforeDelete(r.slots[id])
	}
	s, ok := r.slots[id]
	if !ok || s.Status == entity.StatusBooking {
		return repository.ErrStateConflict
	}
	delete(r.slots, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeGateway struct {
	mu        sync.Mutex
	tokenErr  error
	createErr error
	updateErr error
	deleteErr error
	created   []gateway.EventInput
	updated   []gateway.EventInput
	deletedID []string
	tokens    atomic.Int32
}

func (g *fakeGateway) CalendarID() string { return "primary" }

func (g *fakeGateway) GetAccessToken(context.Context) (string, error) {
	g.tokens.Add(1)
	if g.tokenErr != nil {
		return "", g.tokenErr
	}
	return "access-token", nil
}

func (g *fakeGateway) CreateEvent(_ context.Context, _, _ string, in gateway.EventInput) (*gateway.CreatedEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, in)
	return &gateway.CreatedEvent{ID: "evt-1", MeetingURL: "https://meet.google.com/abc-defg-hij"}, nil
}

func (g *fakeGateway) UpdateEvent(_ context.Context, _, _, _ string, in gateway.EventInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.updateErr != nil {
		return g.updateErr
	}
	g.updated = append(g.updated, in)
	return nil
}

func (g *fakeGateway) DeleteEvent(_ context.Context, _, _, eventID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletedID = append(g.deletedID, eventID)
	return g.deleteErr
}

type fakeProfiles struct {
	profiles map[uuid.UUID]profileentity.Profile
}

func (p *fakeProfiles) GetByIDs(_ context.Context, ids []uuid.UUID) ([]profileentity.Profile, error) {
	var out []profileentity.Profile
	for _, id := range ids {
		if prof, ok := p.profiles[id]; ok {
			out = append(out, prof)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notificationdto.CreateNotificationRequest
	err  error
}

func (n *fakeNotifier) Create(_ context.Context, req *notificationdto.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, *req)
	return nil
}

type fixture struct {
	repo      *fakeSlotRepo
	gw        *fakeGateway
	notifier  *fakeNotifier
	svc       OneOnOneService
	slot      *entity.OneOnOneSlot
	organizer *utils.TokenClaims
	employee  *utils.TokenClaims
	admin     *utils.TokenClaims
}

func profileWith(id uuid.UUID, name, email, role string) profileentity.Profile {
	p := profileentity.Profile{FullName: name, Email: email, Role: role}
	p.ID = id
	return p
}

func newFixture(t *testing.T, mode entity.SlotMode) *fixture {
	t.Helper()

	organizer := &utils.TokenClaims{UserID: uuid.New(), Email: "lead@example.com", Role: constants.RoleManager}
	employee := &utils.TokenClaims{UserID: uuid.New(), Email: "dev@example.com", Role: constants.RoleEmployee}
	admin := &utils.TokenClaims{UserID: uuid.New(), Email: "admin@example.com", Role: constants.RoleAdmin}

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	room := "Room 4"
	slot := &entity.OneOnOneSlot{
		OrganizerID: organizer.UserID,
		StartAt:     start,
		EndAt:       start.Add(30 * time.Minute),
		Mode:        mode,
		Location:    &room,
		Status:      entity.StatusOpen,
	}
	slot.ID = uuid.New()

	repo := newFakeSlotRepo(slot)
	gw := &fakeGateway{}
	notifier := &fakeNotifier{}
	profiles := &fakeProfiles{profiles: map[uuid.UUID]profileentity.Profile{
		organizer.UserID: profileWith(organizer.UserID, "Lead", "lead@example.com", constants.RoleManager),
		// Employee without an address must not become an attendee.
		employee.UserID: profileWith(employee.UserID, "Dev", "", constants.RoleEmployee),
	}}

	return &fixture{
		repo:      repo,
		gw:        gw,
		notifier:  notifier,
		svc:       NewOneOnOneService(repo, gw, profiles, notifier, time.UTC),
		slot:      slot,
		organizer: organizer,
		employee:  employee,
		admin:     admin,
	}
}

func (f *fixture) book(t *testing.T) {
	t.Helper()
	if _, err := f.svc.Book(context.Background(), f.employee, f.slot.ID); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
}

func TestBook_Success(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)

	resp, err := f.svc.Book(context.Background(), f.employee, f.slot.ID)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if !resp.Success || resp.GoogleEventID != "evt-1" || resp.MeetingURL == "" {
		t.Fatalf("Book() = %+v", resp)
	}

	got := f.repo.get(f.slot.ID)
	if got.Status != entity.StatusBooked || !got.IsHeldBy(f.employee.UserID) {
		t.Fatalf("slot = status %s bookedBy %v", got.Status, got.BookedBy)
	}
	if got.GoogleEventID == nil || *got.GoogleEventID != "evt-1" {
		t.Errorf("GoogleEventID = %v", got.GoogleEventID)
	}

	in := f.gw.created[0]
	if !in.CreateMeet {
		t.Error("online slot should request a Meet conference")
	}
	if len(in.Attendees) != 1 || in.Attendees[0].Email != "lead@example.com" {
		t.Errorf("attendees = %+v, want only the organizer", in.Attendees)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].UserID != f.organizer.UserID {
		t.Errorf("notifications = %+v", f.notifier.sent)
	}
}

func TestBook_OfflineSetsLocation(t *testing.T) {
	f := newFixture(t, entity.ModeOffline)
	f.book(t)

	in := f.gw.created[0]
	if in.CreateMeet {
		t.Error("offline slot should not request a Meet conference")
	}
	if in.Location != "Room 4" {
		t.Errorf("Location = %q", in.Location)
	}
}

func TestBook_ConcurrentClaimsExactlyOneWins(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)

	const callers = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user := &utils.TokenClaims{UserID: uuid.New(), Role: constants.RoleEmployee}
			_, err := f.svc.Book(context.Background(), user, f.slot.ID)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.HasCode(err, errors.ErrSlotUnavailable):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("successes = %d, want 1", successes.Load())
	}
	if conflicts.Load() != callers-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts.Load(), callers-1)
	}
}

func TestBook_FailuresRollBackToOpen(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*fixture)
		wantCode errors.ErrorCode
	}{
		{
			name:     "token unavailable",
			setup:    func(f *fixture) { f.gw.tokenErr = gateway.ErrNotConnected },
			wantCode: errors.ErrCalendarNotConnected,
		},
		{
			name: "remote create fails",
			setup: func(f *fixture) {
				f.gw.createErr = errors.NewAppError(errors.ErrCalendarCreateFailed, "boom", nil)
			},
			wantCode: errors.ErrCalendarCreateFailed,
		},
		{
			name:     "final write fails",
			setup:    func(f *fixture) { f.repo.confirmErr = stderrors.New("db down") },
			wantCode: errors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, entity.ModeOnline)
			tt.setup(f)

			_, err := f.svc.Book(context.Background(), f.employee, f.slot.ID)
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("Book() error = %v, want code %s", err, tt.wantCode)
			}

			got := f.repo.get(f.slot.ID)
			if got.Status != entity.StatusOpen {
				t.Errorf("status = %s, want open", got.Status)
			}
			if got.BookedBy != nil {
				t.Errorf("bookedBy = %v, want nil", got.BookedBy)
			}
			if len(f.notifier.sent) != 0 {
				t.Errorf("notifications sent on failure: %+v", f.notifier.sent)
			}
		})
	}
}

func TestBook_FinalWriteFailureDeletesRemoteEvent(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)
	f.repo.confirmErr = stderrors.New("db down")

	_, _ = f.svc.Book(context.Background(), f.employee, f.slot.ID)

	if len(f.gw.deletedID) != 1 || f.gw.deletedID[0] != "evt-1" {
		t.Fatalf("deleted remote events = %v, want [evt-1]", f.gw.deletedID)
	}
}

func TestBook_RollbackSurvivesCancelledContext(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)
	f.gw.createErr = stderrors.New("timeout")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Book(ctx, f.employee, f.slot.ID)
	if err == nil {
		t.Fatal("Book() error = nil")
	}
	if got := f.repo.get(f.slot.ID); got.Status != entity.StatusOpen {
		t.Fatalf("status = %s, want open", got.Status)
	}
}

func TestBook_Rejections(t *testing.T) {
	t.Run("own slot", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		_, err := f.svc.Book(context.Background(), f.organizer, f.slot.ID)
		if !errors.HasCode(err, errors.ErrInvalidInput) {
			t.Fatalf("error = %v", err)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		_, err := f.svc.Book(context.Background(), f.employee, uuid.New())
		if !errors.HasCode(err, errors.ErrNotFound) {
			t.Fatalf("error = %v", err)
		}
	})

	t.Run("already booked", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)
		other := &utils.TokenClaims{UserID: uuid.New(), Role: constants.RoleEmployee}
		_, err := f.svc.Book(context.Background(), other, f.slot.ID)
		if !errors.HasCode(err, errors.ErrSlotUnavailable) {
			t.Fatalf("error = %v", err)
		}
		if f.gw.tokens.Load() != 1 {
			t.Errorf("token exchanges = %d, conflict must not reach Google", f.gw.tokens.Load())
		}
	})

	t.Run("slot in the past", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.repo.slots[f.slot.ID].StartAt = time.Now().Add(-time.Hour)
		_, err := f.svc.Book(context.Background(), f.employee, f.slot.ID)
		if !errors.HasCode(err, errors.ErrSlotUnavailable) {
			t.Fatalf("error = %v", err)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		err := f.svc.Cancel(context.Background(), f.organizer, f.slot.ID, false)
		if !errors.HasCode(err, errors.ErrForbidden) {
			t.Fatalf("error = %v", err)
		}
	})

	t.Run("remote delete failure does not block", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)
		f.gw.deleteErr = stderrors.New("google down")

		if err := f.svc.Cancel(context.Background(), f.admin, f.slot.ID, false); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if got := f.repo.get(f.slot.ID); got.Status != entity.StatusCancelled {
			t.Errorf("status = %s, want cancelled", got.Status)
		}
		if len(f.gw.deletedID) != 1 {
			t.Errorf("remote delete attempts = %d, want 1", len(f.gw.deletedID))
		}
	})

	t.Run("remove deletes the row", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		if err := f.svc.Cancel(context.Background(), f.admin, f.slot.ID, true); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if f.repo.get(f.slot.ID) != nil {
			t.Error("slot still present after remove")
		}
		if len(f.gw.deletedID) != 0 {
			t.Error("open slot has no remote event to delete")
		}
	})

	t.Run("remove refuses a slot claimed after the read", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		claimant := uuid.New()
		f.repo.beforeDelete = func(s *entity.OneOnOneSlot) {
			s.Status = entity.StatusBooking
			s.BookedBy = &claimant
		}

		err := f.svc.Cancel(context.Background(), f.admin, f.slot.ID, true)
		if !errors.HasCode(err, errors.ErrInvalidSlotState) {
			t.Fatalf("Cancel() error = %v, want invalid_slot_state", err)
		}
		got := f.repo.get(f.slot.ID)
		if got == nil || got.Status != entity.StatusBooking {
			t.Fatalf("slot = %+v, want it kept in booking", got)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.repo.slots[f.slot.ID].Status = entity.StatusCancelled
		err := f.svc.Cancel(context.Background(), f.admin, f.slot.ID, false)
		if !errors.HasCode(err, errors.ErrInvalidSlotState) {
			t.Fatalf("error = %v", err)
		}
	})
}

func TestRelease(t *testing.T) {
	t.Run("holder releases", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)

		if err := f.svc.Release(context.Background(), f.employee, f.slot.ID); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		got := f.repo.get(f.slot.ID)
		if got.Status != entity.StatusOpen || got.BookedBy != nil || got.GoogleEventID != nil {
			t.Errorf("slot after release = %+v", got)
		}
		if len(f.gw.deletedID) != 1 {
			t.Errorf("remote delete attempts = %d, want 1", len(f.gw.deletedID))
		}
	})

	t.Run("others cannot release", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)

		for _, user := range []*utils.TokenClaims{f.organizer, f.admin} {
			err := f.svc.Release(context.Background(), user, f.slot.ID)
			if !errors.HasCode(err, errors.ErrForbidden) {
				t.Errorf("Release(%s) error = %v, want forbidden", user.Role, err)
			}
		}
		if got := f.repo.get(f.slot.ID); got.Status != entity.StatusBooked {
			t.Errorf("status = %s, want booked", got.Status)
		}
	})
}

func TestReschedule(t *testing.T) {
	req := &dto.RescheduleRequest{Date: "2030-03-04", StartTime: "14:00", EndTime: "14:45"}

	t.Run("updates remote then local", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)

		slot, err := f.svc.Reschedule(context.Background(), f.organizer, f.slot.ID, req)
		if err != nil {
			t.Fatalf("Reschedule() error = %v", err)
		}
		wantStart := time.Date(2030, 3, 4, 14, 0, 0, 0, time.UTC)
		if !slot.StartAt.Equal(wantStart) || slot.EndAt.Sub(slot.StartAt) != 45*time.Minute {
			t.Errorf("slot times = %v - %v", slot.StartAt, slot.EndAt)
		}
		if len(f.gw.updated) != 1 || !f.gw.updated[0].Start.Equal(wantStart) {
			t.Errorf("remote updates = %+v", f.gw.updated)
		}
	})

	t.Run("remote failure leaves local untouched", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		f.book(t)
		before := f.repo.get(f.slot.ID)
		f.gw.updateErr = stderrors.New("google down")

		_, err := f.svc.Reschedule(context.Background(), f.organizer, f.slot.ID, req)
		if !errors.HasCode(err, errors.ErrCalendarUpdateFailed) {
			t.Fatalf("error = %v", err)
		}
		after := f.repo.get(f.slot.ID)
		if !after.StartAt.Equal(before.StartAt) || !after.EndAt.Equal(before.EndAt) {
			t.Errorf("local times changed: %v -> %v", before.StartAt, after.StartAt)
		}
	})

	t.Run("open slot skips remote", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		if _, err := f.svc.Reschedule(context.Background(), f.organizer, f.slot.ID, req); err != nil {
			t.Fatalf("Reschedule() error = %v", err)
		}
		if f.gw.tokens.Load() != 0 {
			t.Error("open slot should not call Google")
		}
	})

	t.Run("employees are rejected", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		_, err := f.svc.Reschedule(context.Background(), f.employee, f.slot.ID, req)
		if !errors.HasCode(err, errors.ErrForbidden) {
			t.Fatalf("error = %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t, entity.ModeOnline)
		bad := &dto.RescheduleRequest{Date: "2030-03-04", StartTime: "15:00", EndTime: "14:00"}
		_, err := f.svc.Reschedule(context.Background(), f.organizer, f.slot.ID, bad)
		if !errors.HasCode(err, errors.ErrInvalidInput) {
			t.Fatalf("error = %v", err)
		}
	})
}

func TestNotificationFailureDoesNotChangeOutcome(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)
	f.notifier.err = stderrors.New("insert failed")

	resp, err := f.svc.Book(context.Background(), f.employee, f.slot.ID)
	if err != nil || !resp.Success {
		t.Fatalf("Book() = %+v, %v", resp, err)
	}
}

func TestCreateSlot(t *testing.T) {
	f := newFixture(t, entity.ModeOnline)
	start := time.Now().Add(72 * time.Hour)

	tests := []struct {
		name     string
		user     *utils.TokenClaims
		req      dto.CreateSlotRequest
		wantCode errors.ErrorCode
	}{
		{"manager creates", f.organizer, dto.CreateSlotRequest{StartAt: start, EndAt: start.Add(time.Hour)}, ""},
		{"employee forbidden", f.employee, dto.CreateSlotRequest{StartAt: start, EndAt: start.Add(time.Hour)}, errors.ErrForbidden},
		{"bad mode", f.admin, dto.CreateSlotRequest{StartAt: start, EndAt: start.Add(time.Hour), Mode: "hybrid"}, errors.ErrInvalidInput},
		{"inverted", f.admin, dto.CreateSlotRequest{StartAt: start, EndAt: start.Add(-time.Hour)}, errors.ErrInvalidInput},
		{"past", f.admin, dto.CreateSlotRequest{StartAt: time.Now().Add(-2 * time.Hour), EndAt: time.Now().Add(-time.Hour)}, errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := f.svc.CreateSlot(context.Background(), tt.user, &tt.req)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("CreateSlot() error = %v", err)
				}
				if slot.Status != entity.StatusOpen || slot.Mode != entity.ModeOnline || slot.OrganizerID != tt.user.UserID {
					t.Errorf("slot = %+v", slot)
				}
				return
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
