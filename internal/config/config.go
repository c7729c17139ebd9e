package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env       string
	HTTPPort  string
	LogLevel  string
	DataDir   string
	PublicDir string
	ViewsDir  string

	StudentUsername string
	StudentPassword string
	WardenUsername  string
	WardenPassword  string

	JWTIssuer     string
	JWTSigningKey string
	SessionTTL    time.Duration
	SecureCookie  bool

	QueueBackend    string
	RedisAddr       string
	DatabaseURL     string
	RateLimitPerMin int
}

// Load returns application config populated from environment variables with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}
	return App{
		Env:       getEnv("APP_ENV", "dev"),
		HTTPPort:  getEnv("HTTP_PORT", "3000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DataDir:   getEnv("DATA_DIR", "./data"),
		PublicDir: getEnv("PUBLIC_DIR", "./web/public"),
		ViewsDir:  getEnv("VIEWS_DIR", "./web/views"),

		StudentUsername: getEnv("STUDENT_USERNAME", "student"),
		StudentPassword: getEnv("STUDENT_PASSWORD", "1234"),
		WardenUsername:  getEnv("WARDEN_USERNAME", "warden"),
		WardenPassword:  getEnv("WARDEN_PASSWORD", "5678"),

		JWTIssuer:     getEnv("JWT_ISSUER", "hostel"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		SessionTTL:    durationEnv("SESSION_TTL", 12*time.Hour),
		SecureCookie:  boolEnv("SESSION_COOKIE_SECURE", false),

		QueueBackend:    getEnv("QUEUE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 300),
	}
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
