package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	dailydutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/permission"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the primary database with baseline data",
	Long:  `Seed permission classes, duty rows, a sample location tree and the default navbar links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		log := logger.Configure(cmd.OutOrStdout(), cfg.Logging.Level, cfg.Logging.Format)

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return seedPrimary(cmd.Context(), db.Gorm, clearData, cfg.Onboarding.PermissionClass, log)
	},
}

// seededClasses are the permission classes the router gates on.
var seededClasses = []string{
	permission.ClassComputers,
	permission.ClassComputersModify,
	permission.ClassPrinters,
	permission.ClassPrintersModify,
	permission.ClassRooms,
	permission.ClassRoomsModify,
	permission.ClassPortmap,
	permission.ClassPortmapModify,
	permission.ClassDailyDuties,
	permission.ClassRosters,
	permission.ClassCSDAssignment,
	permission.ClassNavbarAdmin,
	permission.ClassPermissionAdmin,
}

type seedLink struct {
	name    string
	route   string
	classes []string
}

// seededNavbar is grouped by top-level entry, in display order.
var seededNavbar = []struct {
	name     string
	children []seedLink
}{
	{"Helpdesk", []seedLink{
		{"Daily Duties", "daily_duties", []string{permission.ClassDailyDuties}},
		{"Rosters", "rosters", []string{permission.ClassRosters}},
		{"CSD Domains", "csd_mappings", []string{permission.ClassCSDAssignment}},
	}},
	{"Inventory", []seedLink{
		{"Computers", "computers", []string{permission.ClassComputers}},
		{"Printers", "printers", []string{permission.ClassPrinters}},
		{"Printer Requests", "printer_requests", []string{permission.ClassDailyDuties}},
	}},
	{"Network", []seedLink{
		{"Ports", "ports", []string{permission.ClassPortmap}},
		{"Access Points", "access_points", []string{permission.ClassPortmap}},
		{"Rooms", "rooms", []string{permission.ClassRooms}},
	}},
	{"Administration", []seedLink{
		{"Navigation", "navbar_links", []string{permission.ClassNavbarAdmin}},
		{"Directory Groups", "groups", []string{permission.ClassPermissionAdmin}},
		{"Permissions", "permissions", []string{permission.ClassPermissionAdmin}},
	}},
}

// seedPrimary is idempotent: rows that already exist are left as they are.
func seedPrimary(ctx context.Context, db *gorm.DB, clear bool, onboardingClass string, log *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db = db.WithContext(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		if clear {
			if err := clearSeeded(tx); err != nil {
				return err
			}
			log.Info("cleared seeded tables")
		}

		classes := seededClasses
		if onboardingClass != "" {
			classes = append(append([]string{}, seededClasses...), onboardingClass)
		}
		byName := make(map[string]permissionDatamodel.Class, len(classes))
		for _, name := range classes {
			class := permissionDatamodel.Class{Name: name}
			if err := tx.Where(permissionDatamodel.Class{Name: name}).FirstOrCreate(&class).Error; err != nil {
				return fmt.Errorf("seed permission class %s: %w", name, err)
			}
			byName[name] = class
		}
		log.Info("seeded permission classes", "count", len(classes))

		// a zero last_checked makes every duty stale until someone acknowledges it
		for _, name := range dailyduty.Names {
			duty := dailydutyDatamodel.Duty{Name: name, LastChecked: time.Unix(0, 0).UTC()}
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&duty).Error; err != nil {
				return fmt.Errorf("seed duty %s: %w", name, err)
			}
		}
		log.Info("seeded daily duties", "count", len(dailyduty.Names))

		if err := seedLocations(tx); err != nil {
			return err
		}
		if err := seedNavbar(tx, byName); err != nil {
			return err
		}
		log.Info("seeded navbar links")
		return nil
	})
}

func seedLocations(tx *gorm.DB) error {
	community := locationDatamodel.Community{Name: "Sierra Madre"}
	if err := tx.Where(locationDatamodel.Community{Name: community.Name}).FirstOrCreate(&community).Error; err != nil {
		return fmt.Errorf("seed community: %w", err)
	}
	building := locationDatamodel.Building{Name: "Buena Vista", CommunityID: community.ID}
	if err := tx.Where(locationDatamodel.Building{Name: building.Name, CommunityID: community.ID}).FirstOrCreate(&building).Error; err != nil {
		return fmt.Errorf("seed building: %w", err)
	}
	for _, name := range []string{"101", "102", "103"} {
		room := locationDatamodel.Room{Name: name, BuildingID: building.ID}
		if err := tx.Where(locationDatamodel.Room{Name: name, BuildingID: building.ID}).FirstOrCreate(&room).Error; err != nil {
			return fmt.Errorf("seed room %s: %w", name, err)
		}
	}
	return nil
}

func seedNavbar(tx *gorm.DB, classes map[string]permissionDatamodel.Class) error {
	for i, group := range seededNavbar {
		parent := navbarDatamodel.Link{DisplayName: group.name, SequenceIndex: i}
		if err := tx.Where("display_name = ? AND parent_id IS NULL", group.name).FirstOrCreate(&parent).Error; err != nil {
			return fmt.Errorf("seed navbar group %s: %w", group.name, err)
		}

		for j, child := range group.children {
			route := child.route
			link := navbarDatamodel.Link{DisplayName: child.name, ParentID: &parent.ID, SequenceIndex: j, RouteName: &route}
			for _, name := range child.classes {
				link.PermissionClasses = append(link.PermissionClasses, classes[name])
			}
			if err := tx.Where("display_name = ? AND parent_id = ?", child.name, parent.ID).FirstOrCreate(&link).Error; err != nil {
				return fmt.Errorf("seed navbar link %s: %w", child.name, err)
			}
		}
	}
	return nil
}

func clearSeeded(tx *gorm.DB) error {
	tables := []string{"navbar_link_permission_classes", "navbar_links", "daily_duties"}
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
