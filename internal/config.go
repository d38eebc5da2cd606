package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/gestorplan/internal/api"
	"github.com/starford/gestorplan/internal/reminder"
)

// Duration decodes "10s"-style YAML values into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard-library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Cache     CacheConfig       `yaml:"cache"`
	Store     StoreConfig       `yaml:"store"`
	Reminders RemindersConfig   `yaml:"reminders"`
	Calendar  CalendarConfig    `yaml:"calendar"`
	Assistant AssistantConfig   `yaml:"assistant"`
	Import    ImportConfig      `yaml:"import"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Reminders.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	return c.Assistant.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CacheConfig holds the local SQLite cache configuration.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// StoreConfig holds the remote record store configuration. An empty URL
// runs the application standalone on the local cache.
type StoreConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, httpURL()),
	)
}

func httpURL() validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return fmt.Errorf("must be an http(s) URL")
		}
		return nil
	})
}

// RemindersConfig controls the reminder engine.
type RemindersConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RetentionDays int    `yaml:"retention_days"`
	DailyAt       string `yaml:"daily_at"`
}

// Validate validates the reminders configuration.
func (c *RemindersConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RetentionDays, validation.Min(1)),
		validation.Field(&c.DailyAt, validation.Required, validation.Date("15:04")),
	)
}

// CronSpec returns the five-field cron expression for the daily scan.
func (c *RemindersConfig) CronSpec() string {
	t, err := time.Parse("15:04", c.DailyAt)
	if err != nil {
		t, _ = time.Parse("15:04", "08:00")
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
}

// CalendarConfig holds calendar rendering configuration.
type CalendarConfig struct {
	WeekStart string `yaml:"week_start"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	if c.WeekStart == "" {
		c.WeekStart = "sunday"
	}
	if _, ok := api.ParseWeekday(c.WeekStart); !ok {
		return fmt.Errorf("calendar: unknown week_start %q", c.WeekStart)
	}
	return nil
}

// Weekday returns the configured first day of the week.
func (c *CalendarConfig) Weekday() time.Weekday {
	wd, ok := api.ParseWeekday(c.WeekStart)
	if !ok {
		return time.Sunday
	}
	return wd
}

// AssistantConfig holds AI assistant configuration. An empty APIKey
// disables the assistant endpoint.
type AssistantConfig struct {
	APIKey  string   `yaml:"api_key"`
	URL     string   `yaml:"url"`
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
}

// Validate validates the assistant configuration.
func (c *AssistantConfig) Validate() error {
	if c.APIKey == "" {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Model, validation.Required),
	)
}

// Enabled reports whether the assistant is configured.
func (c *AssistantConfig) Enabled() bool {
	return c.APIKey != ""
}

// ImportConfig holds the import inbox configuration. An empty Inbox
// disables the directory watcher.
type ImportConfig struct {
	Inbox string `yaml:"inbox"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Cache: CacheConfig{
			Path: "./gestorplan.db",
		},
		Store: StoreConfig{
			Timeout: Duration(10 * time.Second),
		},
		Reminders: RemindersConfig{
			Enabled:       true,
			RetentionDays: reminder.DefaultRetentionDays,
			DailyAt:       "08:00",
		},
		Calendar: CalendarConfig{
			WeekStart: "sunday",
		},
		Assistant: AssistantConfig{
			URL:     "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-2.5-flash",
			Timeout: Duration(30 * time.Second),
		},
	}
}
