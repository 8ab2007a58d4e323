package db

import (
	"fmt"
	"net/url"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the database connection. A Turso URL takes precedence over the
// local SQLite file, which is opened in WAL mode for concurrency.
func Initialize(cfg *config.Config) error {
	log := logger.WithComponent("db")

	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Warn
	}

	dialector, target := dialectorFor(cfg)

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("target", target).Msg("Database connection established")
	return nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, string) {
	if cfg.TursoDatabaseURL != "" {
		dsn := cfg.TursoDatabaseURL
		if cfg.TursoAuthToken != "" {
			dsn += "?authToken=" + url.QueryEscape(cfg.TursoAuthToken)
		}
		return sqlite.New(sqlite.Config{DriverName: "libsql", DSN: dsn}), "turso"
	}

	return sqlite.Open(cfg.DBPath + "?_journal_mode=WAL"), cfg.DBPath
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log := logger.WithComponent("db")
	log.Info().Int("models", len(models)).Msg("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
