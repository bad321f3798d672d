package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	LogLevel string

	SQLitePath  string
	PostgresURL string // vacío = ledger en SQLite
	MongoURI    string // vacío = ejercicios en SQLite
	MongoDB     string

	ClickHouseAddr string // vacío = balance calculado en el repositorio
	ClickHouseDB   string

	RedisAddr    string
	KafkaBrokers []string
	UseKafka     bool

	CacheTTL     time.Duration
	OutboxPeriod time.Duration
	OutboxLimit  int

	JWTSecret string
	TokenTTL  time.Duration

	AdminUsername string // vacío = no se crea administrador inicial
	AdminPassword string

	ResendAPIKey string
	MailFrom     string
}

// LoadConfig lee las variables de entorno. Si existe un fichero .env en el
// directorio de trabajo se carga antes, sin pisar variables ya definidas.
func LoadConfig() *Config {
	_ = godotenv.Load()

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SQLitePath:  getEnv("SQLITE_PATH", "./gymlab.db"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "gymlab"),

		ClickHouseAddr: os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "gymlab"),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: kafkaBrokers,
		UseKafka:     getEnv("USE_KAFKA", "false") == "true",

		CacheTTL:     getDuration("CACHE_TTL", 5*time.Minute),
		OutboxPeriod: getDuration("OUTBOX_PERIOD", 1*time.Second),
		OutboxLimit:  getInt("OUTBOX_LIMIT", 10),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		TokenTTL:  getDuration("TOKEN_TTL", 12*time.Hour),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "Gymlab <no-reply@gymlab.local>"),
	}
}
