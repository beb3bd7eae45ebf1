// Package recurrence converts recurrence patterns to and from RFC 5545 rule strings
// and expands recurring calendar events into concrete occurrences.
package recurrence

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

var (
	ErrEmptyRule            = stderrors.New("recurrence rule is empty")
	ErrUnsupportedFrequency = stderrors.New("unsupported recurrence frequency")
	ErrCountAndUntil        = stderrors.New("COUNT and UNTIL are mutually exclusive")
	ErrUnsupportedPart      = stderrors.New("unsupported recurrence rule part")
)

// Pattern is the structured form of a recurrence rule. Zero values mean absent.
type Pattern struct {
	Frequency  Frequency      `json:"frequency"`
	Interval   int            `json:"interval,omitempty"`
	ByWeekDay  []time.Weekday `json:"byWeekDay,omitempty"`
	ByMonthDay int            `json:"byMonthDay,omitempty"`
	Count      int            `json:"count,omitempty"`
	Until      *time.Time     `json:"until,omitempty"`
}

const untilLayout = "20060102T150405Z"

var freqToRRule = map[Frequency]rrule.Frequency{
	FrequencyDaily:   rrule.DAILY,
	FrequencyWeekly:  rrule.WEEKLY,
	FrequencyMonthly: rrule.MONTHLY,
	FrequencyYearly:  rrule.YEARLY,
}

var rruleToFreq = map[rrule.Frequency]Frequency{
	rrule.DAILY:   FrequencyDaily,
	rrule.WEEKLY:  FrequencyWeekly,
	rrule.MONTHLY: FrequencyMonthly,
	rrule.YEARLY:  FrequencyYearly,
}

var weekdayCodes = [...]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// rrule-go numbers weekdays from Monday.
var rruleWeekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ParseWeekday accepts a two letter weekday code such as "MO".
func ParseWeekday(code string) (time.Weekday, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for d, c := range weekdayCodes {
		if c == code {
			return time.Weekday(d), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", code)
}

func WeekdayCode(d time.Weekday) string {
	return weekdayCodes[d]
}

// Validate checks the invariants a pattern must hold before it is encoded.
func (p Pattern) Validate() error {
	if _, ok := freqToRRule[p.Frequency]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFrequency, p.Frequency)
	}
	if p.Interval < 0 {
		return fmt.Errorf("interval must be positive, got %d", p.Interval)
	}
	if p.Count < 0 {
		return fmt.Errorf("count must be positive, got %d", p.Count)
	}
	if p.Count > 0 && p.Until != nil {
		return ErrCountAndUntil
	}
	if p.ByMonthDay < -31 || p.ByMonthDay > 31 {
		return fmt.Errorf("by month day out of range: %d", p.ByMonthDay)
	}
	for _, d := range p.ByWeekDay {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d", d)
		}
	}
	return nil
}

// ToRuleString encodes p as FREQ=..;INTERVAL=..;BYDAY=..;BYMONTHDAY=..;COUNT=..|UNTIL=..
// Only populated fields are written.
func ToRuleString(p Pattern) string {
	parts := []string{"FREQ=" + string(p.Frequency)}
	if p.Interval > 0 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(p.Interval))
	}
	if len(p.ByWeekDay) > 0 {
		days := make([]string, 0, len(p.ByWeekDay))
		for _, d := range p.ByWeekDay {
			days = append(days, WeekdayCode(d))
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	if p.ByMonthDay != 0 {
		parts = append(parts, "BYMONTHDAY="+strconv.Itoa(p.ByMonthDay))
	}
	switch {
	case p.Count > 0:
		parts = append(parts, "COUNT="+strconv.Itoa(p.Count))
	case p.Until != nil:
		parts = append(parts, "UNTIL="+p.Until.UTC().Format(untilLayout))
	}
	return strings.Join(parts, ";")
}

// FromRuleString decodes a rule string, with or without a leading "RRULE:".
// It returns an error for anything outside the supported subset and never panics.
func FromRuleString(rule string) (p *Pattern, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("parse recurrence rule: %v", r)
		}
	}()

	rule = strings.ToUpper(strings.TrimSpace(rule))
	rule = strings.TrimPrefix(rule, "RRULE:")
	if rule == "" {
		return nil, ErrEmptyRule
	}

	seen := make(map[string]bool)
	kept := make([]string, 0, 4)
	for _, part := range strings.Split(rule, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kept = append(kept, part)
		key, _, _ := strings.Cut(part, "=")
		switch key {
		case "FREQ", "INTERVAL", "BYDAY", "BYMONTHDAY", "COUNT", "UNTIL", "WKST":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedPart, key)
		}
		seen[key] = true
	}
	if len(kept) == 0 {
		return nil, ErrEmptyRule
	}
	if !seen["FREQ"] {
		return nil, fmt.Errorf("%w: FREQ is required", ErrUnsupportedFrequency)
	}
	if seen["COUNT"] && seen["UNTIL"] {
		return nil, ErrCountAndUntil
	}

	opt, err := rrule.StrToROption(strings.Join(kept, ";"))
	if err != nil {
		return nil, fmt.Errorf("parse recurrence rule: %w", err)
	}

	freq, ok := rruleToFreq[opt.Freq]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFrequency, opt.Freq)
	}
	if seen["INTERVAL"] && opt.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", opt.Interval)
	}
	if seen["COUNT"] && opt.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", opt.Count)
	}
	if len(opt.Bymonthday) > 1 {
		return nil, fmt.Errorf("%w: multiple BYMONTHDAY values", ErrUnsupportedPart)
	}

	p = &Pattern{
		Frequency: freq,
		Interval:  opt.Interval,
		Count:     opt.Count,
	}
	if len(opt.Bymonthday) == 1 {
		p.ByMonthDay = opt.Bymonthday[0]
	}
	for _, wd := range opt.Byweekday {
		if wd.N() != 0 {
			return nil, fmt.Errorf("%w: positional BYDAY", ErrUnsupportedPart)
		}
		// rrule-go: 0 = Monday ... 6 = Sunday
		p.ByWeekDay = append(p.ByWeekDay, time.Weekday((wd.Day()+1)%7))
	}
	if seen["UNTIL"] {
		until := opt.Until.UTC()
		p.Until = &until
	}
	return p, nil
}

// toROption builds the rrule-go options for p anchored at dtstart.
func toROption(p Pattern, dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{
		Freq:     freqToRRule[p.Frequency],
		Dtstart:  dtstart,
		Interval: p.Interval,
		Count:    p.Count,
	}
	if opt.Interval == 0 {
		opt.Interval = 1
	}
	if p.ByMonthDay != 0 {
		opt.Bymonthday = []int{p.ByMonthDay}
	}
	for _, d := range p.ByWeekDay {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
	}
	if p.Until != nil {
		opt.Until = *p.Until
	}
	return opt
}
