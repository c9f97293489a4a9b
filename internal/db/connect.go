// Package db provides database connections and schema migration.
package db

import (
	"fmt"

	"github.com/mkessy/devbench/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteDSN builds a sqlite DSN with WAL journaling and foreign-key
// enforcement. Foreign keys are off by default in sqlite; the referential
// checks on project-owned rows depend on this flag.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
}

// MySQLDSN builds a MySQL DSN for server deployments.
func MySQLDSN(user, host string, port int, database string) string {
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true", user, host, port, database)
}

// Connect opens a GORM connection for the configured backend.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return connectSQLite(cfg.Path)
	case "mysql":
		return connectMySQL(cfg)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}
}

func connectSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite %s: %w", path, err)
	}

	// A single connection avoids "database is locked" errors under
	// concurrent writers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db: sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

func connectMySQL(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := MySQLDSN(cfg.User, cfg.Host, cfg.Port, cfg.Database)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Database, err)
	}
	return db, nil
}
