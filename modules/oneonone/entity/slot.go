package entity

import (
	"time"

	"hr-dashboard-api/core/entity"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	StatusOpen      SlotStatus = "open"
	StatusBooking   SlotStatus = "booking"
	StatusBooked    SlotStatus = "booked"
	StatusCancelled SlotStatus = "cancelled"
)

type SlotMode string

const (
	ModeOnline  SlotMode = "online"
	ModeOffline SlotMode = "offline"
)

func (m SlotMode) Valid() bool {
	return m == ModeOnline || m == ModeOffline
}

// OneOnOneSlot is a bookable window published by an organizer.
// Booking fields are only set while Status is booking or booked.
type OneOnOneSlot struct {
	OrganizerID   uuid.UUID  `db:"organizer_id" json:"organizerId"`
	StartAt       time.Time  `db:"start_at" json:"startAt"`
	EndAt         time.Time  `db:"end_at" json:"endAt"`
	Mode          SlotMode   `db:"mode" json:"mode"`
	Location      *string    `db:"location" json:"location,omitempty"`
	Status        SlotStatus `db:"status" json:"status"`
	BookedBy      *uuid.UUID `db:"booked_by" json:"bookedBy"`
	BookedAt      *time.Time `db:"booked_at" json:"bookedAt,omitempty"`
	MeetingURL    *string    `db:"meeting_url" json:"meetingUrl,omitempty"`
	GoogleEventID *string    `db:"google_event_id" json:"googleEventId,omitempty"`
	entity.BaseEntity
}

func (s *OneOnOneSlot) IsHeldBy(userID uuid.UUID) bool {
	return s.BookedBy != nil && *s.BookedBy == userID
}
