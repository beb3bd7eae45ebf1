package gateway

import (
	"fmt"
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/modules/calendar/entity"

	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// parseEventTime resolves a start or end. dateTime values are RFC 3339; all-day
// date values become local midnight in loc.
func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) (t time.Time, allDay bool, err error) {
	if dt == nil {
		return time.Time{}, false, fmt.Errorf("missing date")
	}
	if dt.DateTime != "" {
		t, err = time.Parse(time.RFC3339, dt.DateTime)
		return t, false, err
	}
	if dt.Date != "" {
		t, err = time.ParseInLocation(dateLayout, dt.Date, loc)
		return t, true, err
	}
	return time.Time{}, false, fmt.Errorf("neither dateTime nor date set")
}

func meetingURL(e *calendar.Event) string {
	if e.HangoutLink != "" {
		return e.HangoutLink
	}
	if e.ConferenceData != nil {
		for _, ep := range e.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				return ep.Uri
			}
		}
	}
	return ""
}

// toCalendarEvent maps a remote event into the dashboard representation.
func (c *Client) toCalendarEvent(e *calendar.Event) (entity.CalendarEvent, error) {
	start, allDay, err := parseEventTime(e.Start, c.loc)
	if err != nil {
		return entity.CalendarEvent{}, fmt.Errorf("start: %w", err)
	}
	end, _, err := parseEventTime(e.End, c.loc)
	if err != nil {
		return entity.CalendarEvent{}, fmt.Errorf("end: %w", err)
	}

	out := entity.CalendarEvent{
		ID:          e.Id,
		Title:       e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Source:      entity.SourceGoogle,
		Kind:        entity.KindEvent,
		Color:       constants.ColorGoogle,
		Bookable:    true,
		MeetingURL:  meetingURL(e),
	}
	if e.Organizer != nil {
		out.Organizer = e.Organizer.Email
	}
	for _, a := range e.Attendees {
		out.Attendees = append(out.Attendees, entity.Attendee{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
			Self:           a.Self,
		})
	}

	if c.holidays.IsHoliday(e) {
		out.Kind = entity.KindHoliday
		out.Color = constants.ColorHoliday
		out.Bookable = false
	}
	return out, nil
}
