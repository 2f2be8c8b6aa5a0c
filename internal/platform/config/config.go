package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	AppEnv  string
	JWTKey  []byte
	JWTExp  time.Duration

	IdentityTokenSecret []byte
	IdentityIssuer      string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ActivityQueueName      string
	ActivityLockPrefix     string
	ActivityLockTTLSeconds int
	// EmbeddedWorker runs the activity worker inside the API process.
	// Disable it when cmd/worker runs separately.
	EmbeddedWorker    bool
	WorkerMetricsPort string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	CORSAllowedOrigins []string
	SeedCatalogPath    string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:                getEnv("API_PORT", "8080"),
		AppEnv:                 getEnv("APP_ENV", "development"),
		JWTKey:                 []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:                 time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		IdentityTokenSecret:    []byte(getEnv("IDENTITY_TOKEN_SECRET", "identitysecret")),
		IdentityIssuer:         getEnv("IDENTITY_ISSUER", ""),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "user"),
		DBPassword:             getEnv("DB_PASSWORD", "password"),
		DBName:                 getEnv("DB_NAME", "skill_tracker_db"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		ActivityQueueName:      getEnv("ACTIVITY_QUEUE_NAME", "activity_events_queue"),
		ActivityLockPrefix:     getEnv("ACTIVITY_LOCK_PREFIX", "activity_lock:"),
		ActivityLockTTLSeconds: getEnvAsInt("ACTIVITY_LOCK_TTL_SECONDS", 30),
		EmbeddedWorker:         getEnvAsBool("EMBEDDED_WORKER", true),
		WorkerMetricsPort:      getEnv("WORKER_METRICS_PORT", "9091"),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o"),
		CORSAllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		SeedCatalogPath:        getEnv("SEED_CATALOG_PATH", "configs/catalog.yaml"),
	}

	if url := getEnv("DATABASE_URL", ""); url != "" {
		cfg.DBConnStr = url
	} else {
		cfg.DBConnStr = "host=" + cfg.DBHost +
			" port=" + cfg.DBPort +
			" user=" + cfg.DBUser +
			" password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName +
			" sslmode=" + cfg.DBSslMode
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
