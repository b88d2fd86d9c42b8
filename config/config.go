package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr     string
	DBDriver string
	DBDSN    string
	LogLevel string

	JWTSecret   string
	JWTTTLHours int

	// Calendar used to decide which AttendanceDay a timestamp belongs to.
	AttendanceLocation *time.Location

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	MQTTBrokerURL string
	MQTTClientID  string
	MQTTTopic     string
}

// Load reads the configuration from environment variables. godotenv.Load is
// expected to have run already.
func Load() (Config, error) {
	cfg := Config{
		Addr:          GetEnv("APP_ADDR", ":3000"),
		DBDriver:      strings.ToLower(GetEnv("DB_DRIVER", "mysql")),
		DBDSN:         os.Getenv("DB_DSN"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTLHours:   GetEnvAsInt("JWT_TTL_HOURS", 24),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      GetEnvAsInt("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:  GetEnv("MQTT_CLIENT_ID", "tracewing-api"),
		MQTTTopic:     GetEnv("MQTT_TOPIC", "tracewing/locations/+"),
	}

	tz := GetEnv("ATTENDANCE_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_TIMEZONE %q: %w", tz, err)
	}
	cfg.AttendanceLocation = loc

	missing := []string{}
	if cfg.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP settings are complete.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
