package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-tenure/internal/config"
	"go-tenure/internal/record"
	"go-tenure/internal/shared/connection"
	"go-tenure/internal/shared/migration"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewLogger builds the process logger for cfg's environment.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Storage is an opened record store and the function that releases it.
type Storage struct {
	Repo  record.Repository
	Close func(ctx context.Context) error
}

// OpenStorage connects to the backend selected by cfg.StorageDriver. SQL
// backends are migrated before use.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	logger := zap.L().Named("app.storage")

	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := connection.ConnectMongoWithRetry(ctx, cfg.MongoURI, cfg.ConnectRetries)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := record.EnsureIndexes(ctx, db); err != nil {
			logger.Warn("ensure record indexes failed", zap.Error(err))
		}
		logger.Info("record storage ready", zap.String("driver", cfg.StorageDriver), zap.String("database", cfg.MongoDatabase))
		return &Storage{
			Repo:  record.NewMongoRepository(db),
			Close: client.Disconnect,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		gormDB, dialect, err := openGORM(cfg)
		if err != nil {
			return nil, err
		}
		return openSQLStorage(gormDB, dialect, logger)
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func openGORM(cfg config.Config) (*gorm.DB, string, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := connection.ConnectGORMWithRetry(
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			cfg.DBSSLMode,
			cfg.ConnectRetries,
		)
		return db, migration.DialectPostgres, err
	case config.DriverSQLite:
		db, err := connection.ConnectSQLite(cfg.SQLitePath)
		return db, migration.DialectSQLite, err
	}
	return nil, "", fmt.Errorf("storage driver %q has no SQL schema", cfg.StorageDriver)
}

// OpenSQLDB opens the SQL database selected by cfg without migrating it and
// returns it with its migration dialect.
func OpenSQLDB(cfg config.Config) (*sql.DB, string, error) {
	gormDB, dialect, err := openGORM(cfg)
	if err != nil {
		return nil, "", err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, "", err
	}
	return sqlDB, dialect, nil
}

func openSQLStorage(gormDB *gorm.DB, dialect string, logger *zap.Logger) (*Storage, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if _, err := migration.Up(sqlDB, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("record storage ready", zap.String("dialect", dialect))
	return &Storage{
		Repo:  record.NewSQLRepository(gormDB),
		Close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}

// BuildApp connects the infrastructure named in cfg and registers every
// route on router. The returned func releases the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = storage.Close(context.Background()) }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := moduleDeps{repo: storage.Repo}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		deps.rdb = rdb
	} else {
		logger.Info("REDIS_ADDR not set, idempotency keys are ignored")
	}

	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		deps.publisher = record.NewKafkaEventPublisher(writer)
	} else {
		logger.Info("KAFKA_BROKER not set, record events are not published")
	}

	registerModules(router, deps)

	return cleanup, nil
}
