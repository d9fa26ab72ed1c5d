package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies all pending migrations.
func Migrate(db *sql.DB, logger *zerolog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.Up(db, migrationsDir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sql.DB, logger *zerolog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.Down(db, migrationsDir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

// MigrationStatus logs the applied state of every migration.
func MigrationStatus(db *sql.DB, logger *zerolog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.Status(db, migrationsDir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the latest applied migration version.
func SchemaVersion(db *sql.DB, logger *zerolog.Logger) (int64, error) {
	var version int64
	err := withGoose(logger, func() error {
		v, err := goose.GetDBVersion(db)
		if err != nil {
			return fmt.Errorf("get schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(logger *zerolog.Logger, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: logger})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}

// gooseLogger routes goose output into zerolog.
type gooseLogger struct {
	log *zerolog.Logger
}

func (l gooseLogger) Fatal(v ...interface{}) {
	l.logger().Fatal().Msg(strings.TrimSpace(fmt.Sprint(v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger().Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Print(v ...interface{}) {
	l.logger().Info().Msg(strings.TrimSpace(fmt.Sprint(v...)))
}

func (l gooseLogger) Println(v ...interface{}) {
	l.logger().Info().Msg(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger().Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) logger() *zerolog.Logger {
	if l.log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	sub := l.log.With().Str("component", "migrate").Logger()
	return &sub
}
