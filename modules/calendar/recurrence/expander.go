package recurrence

import (
	"fmt"
	"time"

	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/modules/calendar/entity"

	"github.com/teambition/rrule-go"
)

// OccurrenceIDLayout is the UTC, millisecond precision form used in occurrence ids.
const OccurrenceIDLayout = "2006-01-02T15:04:05.000Z"

// ErrorReporter receives rules that could not be expanded.
type ErrorReporter func(template entity.CalendarEvent, err error)

type Expander struct {
	loc    *time.Location
	report ErrorReporter
}

type ExpanderOption func(*Expander)

// WithLocation sets the zone weekday and month-day rules are evaluated in.
func WithLocation(loc *time.Location) ExpanderOption {
	return func(e *Expander) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithErrorReporter(r ErrorReporter) ExpanderOption {
	return func(e *Expander) {
		if r != nil {
			e.report = r
		}
	}
}

func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{
		loc: time.UTC,
		report: func(template entity.CalendarEvent, err error) {
			logger.Error("OccurrenceExpander:Expand:InvalidRule",
				"event_id", template.ID,
				"rule", template.Rule(),
				"error", err,
			)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OccurrenceID derives the stable id of the occurrence of parentID starting at start.
func OccurrenceID(parentID string, start time.Time) string {
	return parentID + "-" + start.UTC().Format(OccurrenceIDLayout)
}

// Expand materializes the occurrences of template whose start lies in
// [rangeStart, rangeEnd]. A template without a rule is returned as-is when it
// overlaps the range. A bad rule yields no occurrences and is reported.
func (e *Expander) Expand(template entity.CalendarEvent, rangeStart, rangeEnd time.Time) []entity.CalendarEvent {
	if rangeEnd.Before(rangeStart) {
		return []entity.CalendarEvent{}
	}

	if template.Rule() == "" {
		if !template.Start.After(rangeEnd) && !template.End.Before(rangeStart) {
			return []entity.CalendarEvent{template}
		}
		return []entity.CalendarEvent{}
	}

	pattern, err := FromRuleString(template.Rule())
	if err != nil {
		e.report(template, err)
		return []entity.CalendarEvent{}
	}

	rule, err := rrule.NewRRule(toROption(*pattern, template.Start.In(e.loc)))
	if err != nil {
		e.report(template, fmt.Errorf("build rule: %w", err))
		return []entity.CalendarEvent{}
	}

	duration := template.End.Sub(template.Start)
	starts := rule.Between(rangeStart, rangeEnd, true)

	out := make([]entity.CalendarEvent, 0, len(starts))
	for _, start := range starts {
		occ := template
		occ.Start = start
		occ.End = start.Add(duration)
		occ.ID = OccurrenceID(template.ID, start)
		occ.ParentEventID = template.ID
		occ.RecurrenceID = start.UTC().Format(OccurrenceIDLayout)
		occ.RecurrenceRule = nil
		occ.Attendees = append([]entity.Attendee(nil), template.Attendees...)
		out = append(out, occ)
	}
	return out
}
