package dto

import (
	"time"

	"hr-dashboard-api/modules/oneonone/entity"
)

type CreateSlotRequest struct {
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
	Mode     string    `json:"mode"`
	Location *string   `json:"location"`
}

type BookRequest struct {
	SlotID string `json:"slotId"`
}

type BookResponse struct {
	Success       bool   `json:"success"`
	MeetingURL    string `json:"meetingUrl"`
	GoogleEventID string `json:"googleEventId"`
}

const (
	ActionCancel  = "cancel"
	ActionRelease = "release"
)

type CancelRequest struct {
	SlotID string `json:"slotId"`
	Action string `json:"action"`
	// Remove deletes the row instead of marking it cancelled. Admin cancel only.
	Remove bool `json:"remove"`
}

// RescheduleRequest carries a local calendar date (2006-01-02) and wall-clock
// times (15:04) interpreted in the application time zone.
type RescheduleRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Location  *string `json:"location"`
}

type SlotsResponse struct {
	Slots []entity.OneOnOneSlot `json:"slots"`
}
