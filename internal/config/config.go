package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the commands need to build a timetable service.
type Config struct {
	Source       string // CSV path or postgres:// DSN
	Table        string // table read when Source is a DSN
	HTTPAddr     string
	LogLevel     string
	LogFormat    string
	TimeZone     string
	IgnoredRooms []string
	RateLimitMax int
	CORSOrigins  string
}

// Defaults used when neither the environment nor a flag sets a value.
const (
	DefaultSource       = "ultimate_tt.csv"
	DefaultTable        = "timetable_sessions"
	DefaultHTTPAddr     = ":5000"
	DefaultTimeZone     = "Asia/Kolkata"
	DefaultRateLimitMax = 120
)

// DefaultIgnoredRooms never show up as classroom columns.
var DefaultIgnoredRooms = []string{"N/A", "NA", "TBA", "-"}

// LoadEnv reads envFile (default ".env") into the process environment. A
// missing file is not an error; variables already set win.
func LoadEnv(envFile string) (bool, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return true, nil
}

// FromEnv builds a Config from the environment, falling back to defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Source:       GetEnv("TIMETABLE_SOURCE", DefaultSource),
		Table:        GetEnv("TIMETABLE_TABLE", DefaultTable),
		HTTPAddr:     GetEnv("HTTP_ADDR", DefaultHTTPAddr),
		LogLevel:     GetEnv("LOG_LEVEL", "info"),
		LogFormat:    GetEnv("LOG_FORMAT", "console"),
		TimeZone:     GetEnv("TIMETABLE_TZ", DefaultTimeZone),
		IgnoredRooms: DefaultIgnoredRooms,
		CORSOrigins:  GetEnv("CORS_ORIGINS", "*"),
	}

	if raw, ok := os.LookupEnv("IGNORED_ROOMS"); ok {
		cfg.IgnoredRooms = splitList(raw)
	}

	limit, err := getEnvInt("RATE_LIMIT_MAX", DefaultRateLimitMax)
	if err != nil {
		return cfg, err
	}
	cfg.RateLimitMax = limit

	return cfg, nil
}

// Location resolves TimeZone, defaulting to UTC when it is empty.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.TimeZone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMETABLE_TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// GetEnv returns the variable, or the first default when it is unset or blank.
func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
