package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	SMTP struct {
		Host               string
		Port               int
		Secure             bool // implicit TLS
		IgnoreTLS          bool // plaintext, no STARTTLS
		RejectUnauthorized bool // verify server certificate
		Username           string
		Password           string
		AuthType           string // "plain" or "login"
		From               string
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	DB struct {
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Notification struct {
		TemplateDir   string
		QueueSize     int
		DrainInterval time.Duration
		MaxPerTick    int
	}
	Telegram struct {
		BotToken   string
		ChatID     int64
		RatePerSec int
	}

	// NotifiedEmails maps a rule's user identifier to destination addresses.
	NotifiedEmails map[string][]string
}

// MailEnabled reports whether an SMTP transport is configured.
// Without one, delivery is a silent no-op.
func (c Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// SMTP settings
	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.SMTP.Port = p
	}
	cfg.SMTP.Secure = os.Getenv("SMTP_SECURE") == "true"
	cfg.SMTP.IgnoreTLS = os.Getenv("SMTP_IGNORE_TLS") == "true"
	cfg.SMTP.RejectUnauthorized = os.Getenv("SMTP_REJECT_UNAUTHORIZED") != "false"
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.AuthType = os.Getenv("SMTP_AUTH_TYPE")
	cfg.SMTP.From = os.Getenv("SMTP_FROM")

	// Kafka settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Database DSN (optional notification log)
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Delivery queue settings
	cfg.Notification.TemplateDir = os.Getenv("TEMPLATE_DIR")
	if qs, err := strconv.Atoi(os.Getenv("QUEUE_SIZE")); err == nil {
		cfg.Notification.QueueSize = qs
	}
	if ds, err := strconv.Atoi(os.Getenv("DRAIN_INTERVAL_SECONDS")); err == nil {
		cfg.Notification.DrainInterval = time.Duration(ds) * time.Second
	}
	if mt, err := strconv.Atoi(os.Getenv("DRAIN_MAX_PER_TICK")); err == nil {
		cfg.Notification.MaxPerTick = mt
	}

	// Telegram announcer (optional)
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_PER_SEC")); err == nil {
		cfg.Telegram.RatePerSec = r
	}

	// Recipient directory
	if raw := os.Getenv("NOTIFIED_EMAILS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.NotifiedEmails); err != nil {
			return Config{}, fmt.Errorf("invalid NOTIFIED_EMAILS: %w", err)
		}
	}

	// Validate required settings
	missing := []string{}
	if cfg.SMTP.From == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if len(cfg.NotifiedEmails) == 0 {
		missing = append(missing, "NOTIFIED_EMAILS")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.AuthType == "" {
		cfg.SMTP.AuthType = "plain"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "bgp_alerts"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "bgp-notifier"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Notification.TemplateDir == "" {
		cfg.Notification.TemplateDir = "reports/email_templates"
	}
	if cfg.Notification.QueueSize == 0 {
		cfg.Notification.QueueSize = 512
	}
	if cfg.Notification.DrainInterval == 0 {
		cfg.Notification.DrainInterval = 3 * time.Second
	}
	if cfg.Notification.MaxPerTick == 0 {
		cfg.Notification.MaxPerTick = 1
	}
	if cfg.Telegram.RatePerSec == 0 {
		cfg.Telegram.RatePerSec = 1
	}

	return cfg, nil
}
