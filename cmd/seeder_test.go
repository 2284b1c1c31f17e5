package cmd

import (
	"context"
	"time"

	dailydutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/permission"
	"github.com/rowalls/uh-internal-project/internal/testutil"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("seedPrimary", func() {
	var (
		db  *gorm.DB
		ctx context.Context
	)

	count := func(model interface{}) int64 {
		var n int64
		Expect(db.Model(model).Count(&n).Error).To(Succeed())
		return n
	}

	BeforeEach(func() {
		var err error
		db, err = testutil.OpenPrimary()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	It("seeds classes, stale duties, locations and links", func() {
		Expect(seedPrimary(ctx, db, false, "orientation", logger.Discard())).To(Succeed())

		Expect(count(&permissionDatamodel.Class{})).To(BeEquivalentTo(len(seededClasses) + 1))
		Expect(count(&locationDatamodel.Room{})).To(BeEquivalentTo(3))

		var duties []dailydutyDatamodel.Duty
		Expect(db.Find(&duties).Error).To(Succeed())
		Expect(duties).To(HaveLen(len(dailyduty.Names)))
		for _, d := range duties {
			Expect(d.LastChecked.Unix()).To(BeZero())
			Expect(d.LastUserID).To(BeNil())
		}

		var ports navbarDatamodel.Link
		Expect(db.Preload("PermissionClasses").Where("display_name = ?", "Ports").First(&ports).Error).To(Succeed())
		Expect(ports.ParentID).NotTo(BeNil())
		Expect(*ports.RouteName).To(Equal("ports"))
		Expect(ports.PermissionClasses).To(HaveLen(1))
		Expect(ports.PermissionClasses[0].Name).To(Equal(permission.ClassPortmap))
	})

	It("leaves existing rows alone when run twice", func() {
		Expect(seedPrimary(ctx, db, false, "", logger.Discard())).To(Succeed())
		links := count(&navbarDatamodel.Link{})

		Expect(seedPrimary(ctx, db, false, "", logger.Discard())).To(Succeed())
		Expect(count(&navbarDatamodel.Link{})).To(Equal(links))
		Expect(count(&permissionDatamodel.Class{})).To(BeEquivalentTo(len(seededClasses)))
		Expect(count(&dailydutyDatamodel.Duty{})).To(BeEquivalentTo(len(dailyduty.Names)))
	})

	It("rebuilds links and duties with clear", func() {
		Expect(seedPrimary(ctx, db, false, "", logger.Discard())).To(Succeed())
		Expect(db.Model(&dailydutyDatamodel.Duty{}).Where("name = ?", dailyduty.DutyEmail).
			Update("last_checked", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)).Error).To(Succeed())

		Expect(seedPrimary(ctx, db, true, "", logger.Discard())).To(Succeed())

		var email dailydutyDatamodel.Duty
		Expect(db.Where("name = ?", dailyduty.DutyEmail).First(&email).Error).To(Succeed())
		Expect(email.LastChecked.Unix()).To(BeZero())
		Expect(count(&locationDatamodel.Community{})).To(BeEquivalentTo(1))
	})
})

var _ = Describe("migrationTarget", func() {
	It("maps each database onto its own directory", func() {
		cfg := validTestConfig()

		dbCfg, dir, err := migrationTarget(cfg, databasePortmap, "db/migrations")
		Expect(err).NotTo(HaveOccurred())
		Expect(dbCfg.Source).To(Equal("postgres://portmap"))
		Expect(dir).To(Equal("db/migrations/portmap"))

		dbCfg, dir, err = migrationTarget(cfg, databasePrimary, "db/migrations")
		Expect(err).NotTo(HaveOccurred())
		Expect(dbCfg.Source).To(Equal("postgres://primary"))
		Expect(dir).To(Equal("db/migrations/primary"))
	})

	It("rejects unknown databases", func() {
		_, _, err := migrationTarget(validTestConfig(), "reporting", "db/migrations")
		Expect(err).To(MatchError(ContainSubstring("unknown database")))
	})
})
