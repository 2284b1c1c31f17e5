// Package testutil opens throwaway SQLite stores carrying the same schema as
// the primary and portmap databases.
package testutil

import (
	"github.com/jmoiron/sqlx"
	dailydutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	portmapDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/portmap"
	rosterDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/roster"
	userDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenPrimary returns an in-memory database with every primary table.
func OpenPrimary() (*gorm.DB, error) {
	return open(
		&directoryDatamodel.Group{},
		&userDatamodel.User{},
		&userDatamodel.Flair{},
		&permissionDatamodel.Class{},
		&navbarDatamodel.Link{},
		&dailydutyDatamodel.Duty{},
		&locationDatamodel.Community{},
		&locationDatamodel.Building{},
		&locationDatamodel.Room{},
		&inventoryDatamodel.Computer{},
		&inventoryDatamodel.Printer{},
		&inventoryDatamodel.PrinterRequest{},
		&rosterDatamodel.CSDMapping{},
	)
}

// OpenPortmap returns an in-memory database with the portmap tables.
func OpenPortmap() (*gorm.DB, error) {
	return open(&portmapDatamodel.Port{}, &portmapDatamodel.AccessPoint{})
}

// SQLX wraps the same connection for sqlx-backed stores.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}

func open(models ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// every pooled connection to :memory: would otherwise see its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	return db, nil
}
