package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	JWTSecret               string
	PostgresUrl             string
	DBMaxOpenConns          int
	DBMaxIdleConns          int
	DBConnMaxIdleTime       time.Duration
	RedisAddr               string
	RedisPassword           string
	PostCacheTTL            time.Duration
	NatsURL                 string
	ShutdownTimeout         time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("NEXA_ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		PostgresUrl:             getEnv("POSTGRES_URL", ""),
		DBMaxOpenConns:          getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:          getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleTime:       getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		PostCacheTTL:            getEnvDuration("POST_CACHE_TTL", 5*time.Minute),
		NatsURL:                 getEnv("NATS_URL", ""),
		ShutdownTimeout:         getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// LoadDotEnvs loads .env files in priority order. Values already present in
// the environment are never overwritten, so the first file to set a key wins.
func LoadDotEnvs() {
	loadDotEnvs("")
}

func loadDotEnvs(rootPath string) {
	env := os.Getenv("NEXA_ENV")
	if env == "" {
		env = "development"
	}

	// .env.[env].local holds credentials and is never committed
	godotenv.Load(rootPath + ".env." + env + ".local")
	godotenv.Load(rootPath + ".env.local")
	godotenv.Load(rootPath + ".env." + env)
	godotenv.Load(rootPath + ".env")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
