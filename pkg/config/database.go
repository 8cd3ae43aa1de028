package config

import (
	"context"
	"time"

	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// TablePrefix is shared by every table the service owns.
const TablePrefix = "nexa_"

// DB holds the process-wide connections. Redis and Nats are nil when they are
// not configured.
type DB struct {
	Postgres *gorm.DB
	Redis    *redis.Client
	Nats     *nats.Conn
}

// PoolConfig bounds the Postgres connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

// InitDB opens every connection the config asks for. It fails fast: a
// configured backend that cannot be reached is a startup error.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.PostgresUrl == "" {
		return nil, errors.New("POSTGRES_URL environment variable not set")
	}

	postgresDB, err := OpenPostgres(cfg.PostgresUrl, PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	db := &DB{Postgres: postgresDB}

	if cfg.RedisAddr != "" {
		if db.Redis, err = initRedis(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to Redis")
		}
	}

	if cfg.NatsURL != "" {
		if db.Nats, err = initNats(cfg.NatsURL); err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to NATS")
		}
	}

	return db, nil
}

// OpenPostgres opens a pooled GORM handle and pings it.
func OpenPostgres(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   TablePrefix,
			SingularTable: true,
		},
		TranslateError: true,
		Logger: logger.New(log.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Log.Info("Successfully connected to PostgreSQL!")
	return db, nil
}

func initRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Log.Info("Redis connected successfully")
	return client, nil
}

func initNats(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("nexa-api"))
	if err != nil {
		return nil, err
	}

	log.Log.Info("NATS connected successfully")
	return conn, nil
}

// CloseDB closes every open connection. Safe to call on a partially
// initialised DB.
func (db *DB) CloseDB() {
	if db.Nats != nil {
		if err := db.Nats.Drain(); err != nil {
			log.Log.WithError(err).Error("Error draining NATS connection")
		} else {
			log.Log.Info("NATS connection closed.")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			log.Log.WithError(err).Error("Error closing Redis connection")
		} else {
			log.Log.Info("Redis connection closed.")
		}
	}

	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Log.WithError(err).Error("Error getting SQL DB from GORM")
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Log.WithError(err).Error("Error closing PostgreSQL connection")
		} else {
			log.Log.Info("PostgreSQL connection closed.")
		}
	}
}
