package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventSource string

const (
	SourceLocal  EventSource = "local"
	SourceGoogle EventSource = "google"
)

type EventKind string

const (
	KindEvent   EventKind = "event"
	KindHoliday EventKind = "holiday"
)

type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
	Self           bool   `json:"self,omitempty"`
}

// CalendarEvent is both the stored local event and the merged view served to the
// dashboard. Fields tagged db:"-" are derived and never persisted.
type CalendarEvent struct {
	ID             string     `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description,omitempty"`
	Location       string     `db:"location" json:"location,omitempty"`
	Start          time.Time  `db:"start_at" json:"start"`
	End            time.Time  `db:"end_at" json:"end"`
	AllDay         bool       `db:"all_day" json:"allDay"`
	RecurrenceRule *string    `db:"recurrence_rule" json:"recurrenceRule,omitempty"`
	CreatedBy      *uuid.UUID `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`

	ParentEventID string      `db:"-" json:"parentEventId,omitempty"`
	RecurrenceID  string      `db:"-" json:"recurrenceId,omitempty"`
	Source        EventSource `db:"-" json:"source"`
	Kind          EventKind   `db:"-" json:"kind"`
	Color         string      `db:"-" json:"color,omitempty"`
	Bookable      bool        `db:"-" json:"bookable"`
	MeetingURL    string      `db:"-" json:"meetingUrl,omitempty"`
	Organizer     string      `db:"-" json:"organizer,omitempty"`
	Attendees     []Attendee  `db:"-" json:"attendees,omitempty"`
}

// Rule returns the recurrence rule, or "" for one-off events.
func (e CalendarEvent) Rule() string {
	if e.RecurrenceRule == nil {
		return ""
	}
	return *e.RecurrenceRule
}

func (e CalendarEvent) IsRecurring() bool {
	return e.Rule() != ""
}
