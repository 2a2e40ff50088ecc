// database/bootstrap.go
package database

import (
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/go-gormigrate/gormigrate/v2"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agrosmart/entities"
	"agrosmart/pkg/logging"
)

const slowQuery = 200 * time.Millisecond

// Open connects to the configured database. For sqlite the path is a file
// name; postgres and mysql take a driver DSN.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logging.NewGormLogger(log, slowQuery)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "" || driver == "sqlite" {
		// one writer at a time; concurrent writers would otherwise hit SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Migrate brings the schema up to date. Every step is an idempotent
// AutoMigrate, so running it against an existing file is safe.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20241001_create_catalog",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&entities.State{}, &entities.LGA{}, &entities.Coordinate{})
			},
		},
		{
			ID: "20241001_create_farmers",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&entities.Farmer{})
			},
		},
		{
			ID: "20241015_create_weather_observations",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&entities.WeatherObservation{})
			},
		},
		{
			// farmers tables created before the advisory snapshot lack these columns
			ID: "20241101_farmer_advisory_snapshot",
			Migrate: func(tx *gorm.DB) error {
				for _, col := range []string{"Rainfall", "FloodRisk"} {
					if tx.Migrator().HasColumn(&entities.Farmer{}, col) {
						continue
					}
					if err := tx.Migrator().AddColumn(&entities.Farmer{}, col); err != nil {
						return fmt.Errorf("add farmers.%s: %w", col, err)
					}
				}
				return nil
			},
		},
	})
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
