// Package store opens the database and holds the pieces of persistence that
// sit beside the gorm models: the trips read model and the booking lock.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staybook/model"
)

type DBConfig struct {
	Driver string
	Path   string
	DSN    string
	Debug  bool
}

func Open(cfg DBConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.Reservation{},
		&model.Favorite{},
		&model.File{},
	)
}

// Sqlx shares gorm's connection pool with the sqlx read models.
func Sqlx(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	driver := "sqlite3"
	switch db.Dialector.Name() {
	case "postgres":
		driver = "pgx"
	case "mysql":
		driver = "mysql"
	}

	return sqlx.NewDb(sqlDB, driver), nil
}
