package recurrence

import (
	stderrors "errors"
	"reflect"
	"testing"
	"time"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestToRuleString(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		want    string
	}{
		{
			name:    "frequency only",
			pattern: Pattern{Frequency: FrequencyDaily},
			want:    "FREQ=DAILY",
		},
		{
			name:    "weekly with days and count",
			pattern: Pattern{Frequency: FrequencyWeekly, Interval: 2, ByWeekDay: []time.Weekday{time.Monday, time.Wednesday}, Count: 10},
			want:    "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE;COUNT=10",
		},
		{
			name:    "monthly until",
			pattern: Pattern{Frequency: FrequencyMonthly, Interval: 1, ByMonthDay: 15, Until: ptrTime(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))},
			want:    "FREQ=MONTHLY;INTERVAL=1;BYMONTHDAY=15;UNTIL=20250630T000000Z",
		},
		{
			name:    "until is written in UTC",
			pattern: Pattern{Frequency: FrequencyYearly, Until: ptrTime(time.Date(2025, 1, 1, 7, 0, 0, 0, time.FixedZone("WIB", 7*3600)))},
			want:    "FREQ=YEARLY;UNTIL=20250101T000000Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRuleString(tt.pattern); got != tt.want {
				t.Errorf("ToRuleString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	patterns := map[string]Pattern{
		"daily":          {Frequency: FrequencyDaily},
		"daily interval": {Frequency: FrequencyDaily, Interval: 3, Count: 5},
		"weekly days":    {Frequency: FrequencyWeekly, Interval: 1, ByWeekDay: []time.Weekday{time.Sunday, time.Tuesday, time.Saturday}},
		"monthly last":   {Frequency: FrequencyMonthly, ByMonthDay: -1, Count: 12},
		"yearly until":   {Frequency: FrequencyYearly, Interval: 1, Until: ptrTime(time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC))},
	}

	for name, p := range patterns {
		t.Run(name, func(t *testing.T) {
			got, err := FromRuleString(ToRuleString(p))
			if err != nil {
				t.Fatalf("FromRuleString() error = %v", err)
			}
			if got.Frequency != p.Frequency || got.Interval != p.Interval || got.ByMonthDay != p.ByMonthDay || got.Count != p.Count {
				t.Errorf("scalar fields = %+v, want %+v", *got, p)
			}
			if len(p.ByWeekDay) > 0 && !reflect.DeepEqual(got.ByWeekDay, p.ByWeekDay) {
				t.Errorf("ByWeekDay = %v, want %v", got.ByWeekDay, p.ByWeekDay)
			}
			if (p.Until == nil) != (got.Until == nil) {
				t.Fatalf("Until = %v, want %v", got.Until, p.Until)
			}
			if p.Until != nil && !got.Until.Equal(*p.Until) {
				t.Errorf("Until = %v, want %v", *got.Until, *p.Until)
			}
		})
	}
}

func TestFromRuleString_Accepts(t *testing.T) {
	tests := []struct {
		rule string
		want Frequency
	}{
		{"RRULE:FREQ=WEEKLY;BYDAY=FR", FrequencyWeekly},
		{"freq=daily;interval=2", FrequencyDaily},
		{"  FREQ=MONTHLY;BYMONTHDAY=1  ", FrequencyMonthly},
		{"FREQ=WEEKLY;", FrequencyWeekly},
		{"FREQ=DAILY;;INTERVAL=2", FrequencyDaily},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			p, err := FromRuleString(tt.rule)
			if err != nil {
				t.Fatalf("FromRuleString() error = %v", err)
			}
			if p.Frequency != tt.want {
				t.Errorf("Frequency = %s, want %s", p.Frequency, tt.want)
			}
		})
	}
}

func TestFromRuleString_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		wantErr error
	}{
		{"empty", "", ErrEmptyRule},
		{"prefix only", "RRULE:", ErrEmptyRule},
		{"separators only", ";;", ErrEmptyRule},
		{"hourly", "FREQ=HOURLY", ErrUnsupportedFrequency},
		{"missing freq", "INTERVAL=2", ErrUnsupportedFrequency},
		{"unknown part", "FREQ=YEARLY;BYMONTH=3", ErrUnsupportedPart},
		{"positional weekday", "FREQ=MONTHLY;BYDAY=1MO", ErrUnsupportedPart},
		{"count and until", "FREQ=DAILY;COUNT=3;UNTIL=20250101T000000Z", ErrCountAndUntil},
		{"garbage", "this is not a rule", nil},
		{"bad number", "FREQ=DAILY;COUNT=abc", nil},
		{"bad frequency", "FREQ=FORTNIGHTLY", nil},
		{"zero interval", "FREQ=DAILY;INTERVAL=0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromRuleString(tt.rule)
			if err == nil {
				t.Fatalf("FromRuleString(%q) = %+v, want error", tt.rule, p)
			}
			if p != nil {
				t.Errorf("pattern = %+v, want nil", p)
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatternValidate(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{"valid", Pattern{Frequency: FrequencyWeekly, ByWeekDay: []time.Weekday{time.Monday}}, false},
		{"bad frequency", Pattern{Frequency: "HOURLY"}, true},
		{"negative interval", Pattern{Frequency: FrequencyDaily, Interval: -1}, true},
		{"count and until", Pattern{Frequency: FrequencyDaily, Count: 2, Until: ptrTime(time.Now())}, true},
		{"month day out of range", Pattern{Frequency: FrequencyMonthly, ByMonthDay: 32}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pattern.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("th")
	if err != nil || d != time.Thursday {
		t.Errorf("ParseWeekday(th) = %v, %v", d, err)
	}
	if _, err := ParseWeekday("XX"); err == nil {
		t.Error("ParseWeekday(XX) accepted")
	}
}
