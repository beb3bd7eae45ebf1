package dto

import (
	"time"

	"hr-dashboard-api/modules/calendar/entity"
)

type EventsResponse struct {
	Events []entity.CalendarEvent `json:"events"`
}

type StatusResponse struct {
	IsConnected bool   `json:"isConnected"`
	CalendarID  string `json:"calendarId"`
}

// RecurrenceRequest is the structured recurrence a client may attach to a local event.
type RecurrenceRequest struct {
	Frequency  string     `json:"frequency"`
	Interval   int        `json:"interval,omitempty"`
	ByWeekDay  []string   `json:"byWeekDay,omitempty"`
	ByMonthDay int        `json:"byMonthDay,omitempty"`
	Count      int        `json:"count,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
}

type EventRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	AllDay      bool               `json:"allDay"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}
