package gateway

import (
	"strings"

	"google.golang.org/api/calendar/v3"
)

// HolidayMatcher decides whether a remote event is a public holiday notice.
type HolidayMatcher interface {
	IsHoliday(event *calendar.Event) bool
}

// KeywordMatcher flags an event when its organizer address or summary contains one
// of the keywords, ignoring case. It is a heuristic: a meeting titled "holiday
// planning" matches too.
type KeywordMatcher struct {
	keywords []string
}

func NewKeywordMatcher(keywords ...string) *KeywordMatcher {
	m := &KeywordMatcher{}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			m.keywords = append(m.keywords, k)
		}
	}
	return m
}

func (m *KeywordMatcher) IsHoliday(event *calendar.Event) bool {
	if event == nil {
		return false
	}
	var organizer string
	if event.Organizer != nil {
		organizer = strings.ToLower(event.Organizer.Email)
	}
	summary := strings.ToLower(event.Summary)
	for _, k := range m.keywords {
		if strings.Contains(organizer, k) || strings.Contains(summary, k) {
			return true
		}
	}
	return false
}

// HolidayMatcherFunc adapts a plain function to HolidayMatcher.
type HolidayMatcherFunc func(event *calendar.Event) bool

func (f HolidayMatcherFunc) IsHoliday(event *calendar.Event) bool {
	return f(event)
}
