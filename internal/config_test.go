package internal

import (
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestHTTPConfig_InvalidPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail validation")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 70000 should fail validation")
	}
}

func TestStoreConfig_URL(t *testing.T) {
	cfg := StoreConfig{URL: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty URL (standalone mode) should pass: %v", err)
	}
	cfg.URL = "https://records.internal:8443"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("https URL should pass: %v", err)
	}
	cfg.URL = "records.internal"
	if err := cfg.Validate(); err == nil {
		t.Fatal("bare host should fail validation")
	}
}

func TestRemindersConfig_DailyAt(t *testing.T) {
	cfg := RemindersConfig{Enabled: true, RetentionDays: 30, DailyAt: "07:30"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("07:30 should pass: %v", err)
	}
	if got := cfg.CronSpec(); got != "30 7 * * *" {
		t.Errorf("CronSpec() = %q, want %q", got, "30 7 * * *")
	}

	cfg.DailyAt = "25:99"
	if err := cfg.Validate(); err == nil {
		t.Fatal("25:99 should fail validation")
	}
}

func TestRemindersConfig_RetentionMin(t *testing.T) {
	cfg := RemindersConfig{Enabled: true, RetentionDays: -1, DailyAt: "08:00"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative retention should fail validation")
	}
}

func TestCalendarConfig_WeekStart(t *testing.T) {
	cfg := CalendarConfig{WeekStart: "monday"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("monday should pass: %v", err)
	}
	if cfg.Weekday() != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", cfg.Weekday())
	}

	cfg.WeekStart = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty week_start should default: %v", err)
	}
	if cfg.WeekStart != "sunday" {
		t.Errorf("empty week_start normalised to %q, want sunday", cfg.WeekStart)
	}

	cfg.WeekStart = "lundi"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown week_start should fail validation")
	}
}

func TestAssistantConfig_DisabledWithoutKey(t *testing.T) {
	cfg := AssistantConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty assistant config should pass: %v", err)
	}
	if cfg.Enabled() {
		t.Error("assistant without api key should be disabled")
	}
}

func TestAssistantConfig_KeyRequiresURLAndModel(t *testing.T) {
	cfg := AssistantConfig{APIKey: "secret"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("api key without url/model should fail validation")
	}
	cfg.URL = "https://generativelanguage.googleapis.com/v1beta"
	cfg.Model = "gemini-2.5-flash"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete assistant config should pass: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("assistant with api key should be enabled")
	}
}
