package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool limits applied to the shared pool. One pool per process,
// built once at startup and injected into handlers.
const (
	maxIdleConns    = 5
	maxOpenConns    = 25
	connMaxLifetime = time.Hour
)

// Open connects to the database selected by the DSN. DSNs starting with
// "file:" or pointing at a .db file open SQLite; everything else opens
// PostgreSQL.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}

	var dialector gorm.Dialector
	if isSQLiteDSN(dsn) {
		dialector = sqlite.Open(withForeignKeys(dsn))
	} else {
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	sqlDB, errPool := conn.DB()
	if errPool != nil {
		return nil, fmt.Errorf("db: pool: %w", errPool)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return conn, nil
}

// withForeignKeys enables foreign-key enforcement on SQLite connections so
// integrity errors match PostgreSQL behavior.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// isSQLiteDSN reports whether the DSN targets a SQLite database.
func isSQLiteDSN(dsn string) bool {
	if strings.HasPrefix(dsn, "file:") || dsn == ":memory:" {
		return true
	}
	return strings.HasSuffix(dsn, ".db") || strings.HasSuffix(dsn, ".sqlite")
}
