package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// MailConfig is all-or-nothing: the direct-send path is disabled unless every
// field is present.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config is resolved once at startup and passed explicitly into each component.
type Config struct {
	Port        string
	DatabaseURL string

	// External identity provider.
	AuthURL        string
	AuthServiceKey string

	Mail *MailConfig // nil when SMTP is not fully configured

	// Shared secret for unauthenticated webhook callers. Empty disables the check.
	WebhookSecret string

	// Optional audit-event fanout. Empty disables publishing.
	AMQPURL string

	CORSOrigins []string
}

// Load reads the recognized environment variables. DATABASE_URL and the auth
// provider settings are required; everything else degrades gracefully.
func Load() (Config, error) {
	cfg := Config{
		Port:           strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AuthURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("AUTH_URL")), "/"),
		AuthServiceKey: strings.TrimSpace(os.Getenv("AUTH_SERVICE_KEY")),
		WebhookSecret:  strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")),
		AMQPURL:        strings.TrimSpace(os.Getenv("AMQP_URL")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL required")
	}
	if cfg.AuthURL == "" {
		return Config{}, errors.New("AUTH_URL required")
	}
	if cfg.AuthServiceKey == "" {
		return Config{}, errors.New("AUTH_SERVICE_KEY required")
	}

	cfg.Mail = loadMail()

	origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if origins == "" {
		cfg.CORSOrigins = []string{"*"}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

func loadMail() *MailConfig {
	host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	portRaw := strings.TrimSpace(os.Getenv("SMTP_PORT"))
	user := strings.TrimSpace(os.Getenv("SMTP_USER"))
	pass := strings.TrimSpace(os.Getenv("SMTP_PASS"))
	from := strings.TrimSpace(os.Getenv("SMTP_FROM"))

	if host == "" || portRaw == "" || user == "" || pass == "" || from == "" {
		return nil
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return nil
	}

	return &MailConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: pass,
		From:     from,
	}
}
