// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv string
	Port   string

	StorageDriver string
	MongoURI      string
	MongoDatabase string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	SQLitePath string

	RedisAddr    string
	KafkaBroker  string
	KafkaGroupID string

	CORSAllowedOrigins []string
	ConnectRetries     int
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("STORAGE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "tenure")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "data/tenure.db")
	v.SetDefault("KAFKA_GROUP_ID", "go-tenure-record-import")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CONNECT_RETRIES", 5)
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	cfg := Config{
		AppEnv:             v.GetString("APP_ENV"),
		Port:               v.GetString("PORT"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		DBHost:             v.GetString("DB_HOST"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBPort:             v.GetString("DB_PORT"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		KafkaBroker:        v.GetString("KAFKA_BROKER"),
		KafkaGroupID:       v.GetString("KAFKA_GROUP_ID"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ConnectRetries:     v.GetInt("CONNECT_RETRIES"),
	}

	switch cfg.StorageDriver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.ConnectRetries < 1 {
		cfg.ConnectRetries = 1
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
