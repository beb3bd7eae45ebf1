package config

import "testing"

func TestInit_GoogleCredentials(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		connected bool
	}{
		{
			name: "all credentials present",
			env: map[string]string{
				"GOOGLE_CLIENT_ID":     "id",
				"GOOGLE_CLIENT_SECRET": "secret",
				"GOOGLE_REFRESH_TOKEN": "refresh",
			},
			connected: true,
		},
		{
			name: "missing client id",
			env: map[string]string{
				"GOOGLE_CLIENT_SECRET": "secret",
				"GOOGLE_REFRESH_TOKEN": "refresh",
			},
		},
		{
			name: "missing client secret",
			env: map[string]string{
				"GOOGLE_CLIENT_ID":     "id",
				"GOOGLE_REFRESH_TOKEN": "refresh",
			},
		},
		{
			name: "missing refresh token",
			env: map[string]string{
				"GOOGLE_CLIENT_ID":     "id",
				"GOOGLE_CLIENT_SECRET": "secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REFRESH_TOKEN"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := Init()
			if err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if got := cfg.GoogleAPI.IsConnected(); got != tt.connected {
				t.Errorf("IsConnected() = %v, want %v", got, tt.connected)
			}
		})
	}
}

func TestInit_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("HOLIDAY_KEYWORDS", "")

	cfg, err := Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if cfg.GoogleAPI.CalendarID != "primary" {
		t.Errorf("expected default calendar id 'primary', got %q", cfg.GoogleAPI.CalendarID)
	}
	if len(cfg.Holiday.Keywords) != 2 || cfg.Holiday.Keywords[0] != "holiday" || cfg.Holiday.Keywords[1] != "libur" {
		t.Errorf("unexpected default holiday keywords: %v", cfg.Holiday.Keywords)
	}
	if got, ok := GetSafe(); !ok || got != cfg {
		t.Errorf("GetSafe did not return the loaded config")
	}
}

func TestInit_HolidayKeywordsFromEnv(t *testing.T) {
	t.Setenv("HOLIDAY_KEYWORDS", "holiday, cuti bersama ,libur")

	cfg, err := Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	want := []string{"holiday", "cuti bersama", "libur"}
	if len(cfg.Holiday.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", cfg.Holiday.Keywords, want)
	}
	for i := range want {
		if cfg.Holiday.Keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, cfg.Holiday.Keywords[i], want[i])
		}
	}
}
