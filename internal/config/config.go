package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Database    DatabaseConfig
	Reminder    ReminderConfig
	Push        PushConfig

	// TimeZone is the IANA zone all date matching happens in. Never fall
	// back to the host's local zone.
	TimeZone string
	Location *time.Location

	// DayStartHour/DayEndHour bound the visible timeline window.
	DayStartHour int
	DayEndHour   int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// ReminderConfig holds the internal reminder-job settings.
type ReminderConfig struct {
	// Secret guards the internal /reminders/run endpoint.
	Secret string
	// Cron is a cron-style schedule for the in-process reminder job.
	// Empty disables the in-process scheduler (an external caller can
	// still trigger runs over HTTP).
	Cron string
}

// PushConfig holds the outbound push-notification settings.
type PushConfig struct {
	URL    string
	Token  string
	Target string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "visitboard"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	timeZone := getEnv("TIME_ZONE", "Asia/Jakarta")
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", timeZone, err)
	}

	dayStart, err := strconv.Atoi(getEnv("DAY_START_HOUR", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_START_HOUR: %w", err)
	}
	dayEnd, err := strconv.Atoi(getEnv("DAY_END_HOUR", "17"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_END_HOUR: %w", err)
	}
	if dayStart < 0 || dayEnd > 24 || dayStart >= dayEnd {
		return nil, fmt.Errorf("invalid day window %d..%d", dayStart, dayEnd)
	}

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("NODE_ENV", "development"),
		Database:    dbConfig,
		Reminder: ReminderConfig{
			Secret: getEnv("REMINDER_SECRET", ""),
			Cron:   getEnv("REMINDER_CRON", "0 18 * * *"),
		},
		Push: PushConfig{
			URL:    getEnv("PUSH_URL", ""),
			Token:  getEnv("PUSH_TOKEN", ""),
			Target: getEnv("PUSH_TARGET", ""),
		},
		TimeZone:     timeZone,
		Location:     location,
		DayStartHour: dayStart,
		DayEndHour:   dayEnd,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
