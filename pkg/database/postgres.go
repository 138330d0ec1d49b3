package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig bounds the process-wide connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}

// Connect opens a pooled connection. Postgres URLs and key/value DSNs go to the
// pgx-backed postgres driver; sqlite:// and file: DSNs are for local runs and tests.
func Connect(dsn string, pool PoolConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, errors.New("database dsn is empty")
	case IsSQLite(dsn):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), nil
	default:
		return postgres.Open(dsn), nil
	}
}

// IsSQLite reports whether dsn would be opened with the sqlite driver.
func IsSQLite(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	return strings.HasPrefix(dsn, "sqlite://") || strings.HasPrefix(dsn, "file:")
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func TableExists(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

func CountRows(ctx context.Context, db *gorm.DB, table string) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
