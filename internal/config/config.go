package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Mail transports accepted in MAIL_TRANSPORT.
const (
	MailTransportLog  = "log"
	MailTransportAMQP = "amqp"
)

// Config holds everything the API process reads at start-up.
// Nothing is re-read after Load returns.
type Config struct {
	Env  string
	Port string

	// Database
	DBDSN             string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Auth
	JWTSecret    string
	JWTTTL       time.Duration
	UserCacheTTL time.Duration

	// Frontend base URLs per environment, used for CORS.
	FrontendURLs     map[string]string
	CORSAllowOrigins []string

	LogLevel string

	// Product image uploads, served back under /uploads.
	UploadDir      string
	PublicBaseURL  string
	MaxUploadBytes int64

	// Mail
	MailTransport string
	MailFrom      string
	MailAdminTo   string
	RabbitMQURL   string
	MailQueue     string

	// Catalog events
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads the .env file (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := &Config{
		Env:  strings.ToLower(getenv("APP_ENV", EnvDevelopment)),
		Port: getenv("PORT", "5000"),

		DBDSN:             os.Getenv("DB_DSN"),
		DBHost:            getenv("DB_HOST", "127.0.0.1"),
		DBPort:            getenv("DB_PORT", "3306"),
		DBUser:            getenv("DB_USER", "root"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME", "product_details"),
		DBMaxOpenConns:    parseInt(os.Getenv("DB_MAX_OPEN_CONNS"), 25),
		DBMaxIdleConns:    parseInt(os.Getenv("DB_MAX_IDLE_CONNS"), 25),
		DBConnMaxLifetime: parseDuration(os.Getenv("DB_CONN_MAX_LIFETIME"), 5*time.Minute),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       parseDuration(os.Getenv("JWT_TTL"), 72*time.Hour),
		UserCacheTTL: parseDuration(os.Getenv("USER_CACHE_TTL"), 5*time.Minute),

		FrontendURLs: map[string]string{
			EnvDevelopment: getenv("FRONTEND_URL_DEVELOPMENT", "http://localhost:3000"),
			EnvStaging:     getenv("FRONTEND_URL_STAGING", "https://your-staging-server.com"),
			EnvProduction:  getenv("FRONTEND_URL_PRODUCTION", "https://your-production-server.com"),
		},
		CORSAllowOrigins: splitCSV(os.Getenv("CORS_ALLOW_ORIGINS")),

		LogLevel: getenv("LOG_LEVEL", "info"),

		UploadDir:      getenv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:  strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:5000"), "/"),
		MaxUploadBytes: int64(parseInt(os.Getenv("MAX_UPLOAD_BYTES"), 5<<20)),

		MailTransport: strings.ToLower(getenv("MAIL_TRANSPORT", MailTransportLog)),
		MailFrom:      getenv("MAIL_FROM", "no-reply@marketpro.local"),
		MailAdminTo:   getenv("MAIL_ADMIN_TO", "admin@marketpro.local"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		MailQueue:     getenv("MAIL_QUEUE", "mail.outbound"),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "product_events"),
	}

	if cfg.JWTSecret == "" && cfg.Env == EnvDevelopment {
		cfg.JWTSecret = "development-secret-do-not-use-in-production"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem that would make the
// server misbehave at runtime.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set outside development")
	}
	switch c.MailTransport {
	case MailTransportLog:
	case MailTransportAMQP:
		if c.RabbitMQURL == "" {
			return errors.New("MAIL_TRANSPORT=amqp requires RABBITMQ_URL")
		}
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport)
	}
	return nil
}

// FrontendURL is the dashboard origin for the active environment.
func (c *Config) FrontendURL() string {
	return c.FrontendURLs[c.Env]
}

// AllowedOrigins is the CORS allow-list: the active frontend plus any extras.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSAllowOrigins)+1)
	if u := c.FrontendURL(); u != "" {
		origins = append(origins, u)
	}
	for _, o := range c.CORSAllowOrigins {
		if o != c.FrontendURL() {
			origins = append(origins, o)
		}
	}
	return origins
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
