package config

import (
	"context"
	"fmt"
	"time"

	"delivery-management-api/store"
	"delivery-management-api/store/gormstore"
	"delivery-management-api/store/mongostore"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenStore connects to the configured backend and prepares its schema or
// indexes
func OpenStore(ctx context.Context, cfg StoreConfig, log *zap.Logger) (store.Store, error) {
	switch cfg.Driver {
	case StoreSQLite, StorePostgres:
		db, err := openGorm(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := gormstore.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("database connected and migrated", zap.String("driver", cfg.Driver))
		return gormstore.New(db), nil

	case StoreMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		st := mongostore.New(client, cfg.MongoDatabase, cfg.MongoTransactions)
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info("mongodb connected",
			zap.String("database", cfg.MongoDatabase),
			zap.Bool("transactions", cfg.MongoTransactions),
		)
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func openGorm(cfg StoreConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Driver == StorePostgres {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Driver == StoreSQLite {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
