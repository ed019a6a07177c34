package config

import (
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"booking-assistant/internal/slots"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendGoogle   = "google"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer  `yaml:"http_server"`
	Storage     Storage      `yaml:"storage"`
	Redis       Redis        `yaml:"redis"`
	Google      Google       `yaml:"google"`
	Business    Business     `yaml:"business"`
	Departments []Department `yaml:"departments"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// Storage selects the calendar backend: memory, postgres or google.
type Storage struct {
	Backend string `yaml:"backend" env:"CALENDAR_BACKEND" env-default:"memory"`
	Path    string `yaml:"path" env:"STORAGE_PATH"`
}

// Redis is optional; an empty address falls back to an in-process lock.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	LockTTL  time.Duration `yaml:"lock_ttl" env-default:"10s"`
}

type Google struct {
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
	APIKey          string `yaml:"api_key" env:"GOOGLE_CALENDAR_API_KEY"`
}

type Business struct {
	Timezone          string   `yaml:"timezone" env:"BUSINESS_TIMEZONE" env-default:"UTC"`
	WorkStart         string   `yaml:"work_start" env-default:"09:00"`
	WorkEnd           string   `yaml:"work_end" env-default:"17:00"`
	LunchStart        string   `yaml:"lunch_start"`
	LunchEnd          string   `yaml:"lunch_end"`
	SlotDuration      int      `yaml:"slot_duration" env-default:"30"`
	AllowedDurations  []int    `yaml:"allowed_durations"`
	Granularity       int      `yaml:"granularity" env-default:"15"`
	WeekendDays       []string `yaml:"weekend_days" env-default:"sat,sun"`
	Holidays          []string `yaml:"holidays"`
	MaxLookaheadDays  int      `yaml:"max_lookahead_days" env-default:"14"`
	DefaultCalendarID string   `yaml:"default_calendar_id" env:"GOOGLE_CALENDAR_ID" env-default:"primary"`
}

type Department struct {
	Name       string   `yaml:"name"`
	CalendarID string   `yaml:"calendar_id"`
	Keywords   []string `yaml:"keywords"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// Settings parses the business section into engine settings. Malformed
// values fail here rather than inside the engine.
func (b Business) Settings() (slots.Settings, error) {
	const op = "config.Business.Settings"

	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return slots.Settings{}, fmt.Errorf("%s: timezone %q: %w", op, b.Timezone, err)
	}

	// Lunch is disabled when both ends are empty; one empty end is a mistake.
	if (b.LunchStart == "") != (b.LunchEnd == "") {
		return slots.Settings{}, fmt.Errorf("%s: %w: lunch_start and lunch_end must be set together", op, slots.ErrInvalidTime)
	}

	clocks := make([]slots.Clock, 4)
	for i, raw := range []string{b.WorkStart, b.WorkEnd, b.LunchStart, b.LunchEnd} {
		if raw == "" && i >= 2 {
			continue
		}
		if clocks[i], err = slots.ParseClock(raw); err != nil {
			return slots.Settings{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	weekend := make([]time.Weekday, 0, len(b.WeekendDays))
	for _, raw := range b.WeekendDays {
		wd, err := slots.ParseWeekday(raw)
		if err != nil {
			return slots.Settings{}, fmt.Errorf("%s: %w", op, err)
		}
		weekend = append(weekend, wd)
	}

	holidays := make([]slots.Date, 0, len(b.Holidays))
	for _, raw := range b.Holidays {
		d, err := slots.ParseDate(raw)
		if err != nil {
			return slots.Settings{}, fmt.Errorf("%s: holiday: %w", op, err)
		}
		holidays = append(holidays, d)
	}

	return slots.Settings{
		WorkStart:        clocks[0],
		WorkEnd:          clocks[1],
		LunchStart:       clocks[2],
		LunchEnd:         clocks[3],
		SlotDuration:     b.SlotDuration,
		AllowedDurations: b.AllowedDurations,
		Granularity:      b.Granularity,
		WeekendDays:      weekend,
		Holidays:         holidays,
		Location:         loc,
	}, nil
}
