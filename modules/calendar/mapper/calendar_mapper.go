package mapper

import (
	"fmt"
	"strings"

	"hr-dashboard-api/modules/calendar/dto"
	"hr-dashboard-api/modules/calendar/recurrence"
)

// ToPattern converts a request recurrence into a validated pattern.
func ToPattern(req *dto.RecurrenceRequest) (*recurrence.Pattern, error) {
	if req == nil {
		return nil, nil
	}

	p := recurrence.Pattern{
		Frequency:  recurrence.Frequency(strings.ToUpper(strings.TrimSpace(req.Frequency))),
		Interval:   req.Interval,
		ByMonthDay: req.ByMonthDay,
		Count:      req.Count,
	}
	if req.Until != nil {
		until := req.Until.UTC()
		p.Until = &until
	}
	for _, code := range req.ByWeekDay {
		d, err := recurrence.ParseWeekday(code)
		if err != nil {
			return nil, err
		}
		p.ByWeekDay = append(p.ByWeekDay, d)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recurrence: %w", err)
	}
	return &p, nil
}

// ToRule encodes the request recurrence, returning nil for one-off events.
func ToRule(req *dto.RecurrenceRequest) (*string, error) {
	p, err := ToPattern(req)
	if err != nil || p == nil {
		return nil, err
	}
	rule := recurrence.ToRuleString(*p)
	return &rule, nil
}
