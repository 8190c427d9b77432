package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all process-wide settings. It is loaded once at startup
// and injected where needed; nothing reads the environment after Load.
type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	JWTIssuer  string
	JWTTTL     time.Duration
	NatsURL    string
	UploadDir  string
}

// Load reads environment variables, optionally from a .env.dev file.
func Load() *Config {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	return &Config{
		Port:       getEnv("APP_PORT", "8003"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  getEnv("JWT_ISSUER", "jobboard-service"),
		JWTTTL:     getEnvDuration("JWT_TTL", time.Hour*24),
		NatsURL:    getEnv("NATS_URL", "nats://localhost:4222"),
		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
	}
}

// DatabaseURL builds the Postgres DSN the same way the deploy manifests do.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
