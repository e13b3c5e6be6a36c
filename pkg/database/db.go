package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/inventory/config"
	"github.com/shashiranjanraj/inventory/pkg/apperror"
)

// Config selects the store. Each repository gets its own value so tests can
// point at a throwaway file.
type Config struct {
	Driver string
	DSN    string
}

// FromEnv builds a Config from the loaded configuration.
func FromEnv() Config {
	return Config{Driver: config.DatabaseDriver(), DSN: config.DatabaseDSN()}
}

// Open opens the database and configures the connection pool. A store that
// cannot be reached or created is an apperror.ErrStorageUnavailable; an
// unknown driver is a plain configuration error.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}

	if cfg.Driver == "sqlite" {
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, unavailable(fmt.Errorf("database: prepare sqlite file: %w", err))
		}
	}

	dialector, err := buildDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // use pkg/logger, not GORM's own
	})
	if err != nil {
		return nil, unavailable(fmt.Errorf("database: open: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, unavailable(fmt.Errorf("database: get sql.DB: %w", err))
	}

	if cfg.Driver == "sqlite" {
		// One writer at a time; SQLite serialises writes anyway and a single
		// connection avoids SQLITE_BUSY between pooled connections.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	// Verify connection is live. For SQLite this also creates the file.
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, unavailable(fmt.Errorf("database: ping: %w", err))
	}

	return db, nil
}

func unavailable(err error) error {
	return apperror.NewStorageUnavailable("open", err)
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
