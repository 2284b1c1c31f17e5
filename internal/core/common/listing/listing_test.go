package listing_test

import (
	"fmt"

	"github.com/rowalls/uh-internal-project/internal/core/common/listing"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	"github.com/rowalls/uh-internal-project/internal/testutil"
	"github.com/rowalls/uh-internal-project/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Fetch", func() {
	var (
		db       *gorm.DB
		building locationDatamodel.Building
		other    locationDatamodel.Building
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.OpenPrimary()
		Expect(err).NotTo(HaveOccurred())

		community := locationDatamodel.Community{Name: "Poly Canyon Village"}
		Expect(db.Create(&community).Error).To(Succeed())
		building = locationDatamodel.Building{Name: "Aliso", CommunityID: community.ID}
		other = locationDatamodel.Building{Name: "Buena Vista", CommunityID: community.ID}
		Expect(db.Create(&building).Error).To(Succeed())
		Expect(db.Create(&other).Error).To(Succeed())

		for i := 1; i <= 12; i++ {
			Expect(db.Create(&locationDatamodel.Room{Name: fmt.Sprintf("A%03d", i), BuildingID: building.ID}).Error).To(Succeed())
		}
		Expect(db.Create(&locationDatamodel.Room{Name: "B100_X", BuildingID: other.ID}).Error).To(Succeed())
	})

	It("pages and counts", func() {
		var rooms []locationDatamodel.Room
		p := transport.ListParams{Start: 10, Length: 5, OrderBy: "name", OrderDir: "asc"}

		total, filtered, err := listing.Fetch(db, p, listing.Options{}, &rooms)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(13)))
		Expect(filtered).To(Equal(int64(13)))
		Expect(rooms).To(HaveLen(3))
		Expect(rooms[0].Name).To(Equal("A011"))
	})

	It("searches case-insensitively and keeps the unfiltered total", func() {
		var rooms []locationDatamodel.Room
		p := transport.ListParams{Length: 25, Search: "a00", OrderBy: "name", OrderDir: "desc"}

		total, filtered, err := listing.Fetch(db, p, listing.Options{SearchColumns: []string{"name"}}, &rooms)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(13)))
		Expect(filtered).To(Equal(int64(9)))
		Expect(rooms[0].Name).To(Equal("A009"))
	})

	It("treats LIKE wildcards in the search term literally", func() {
		var rooms []locationDatamodel.Room
		p := transport.ListParams{Length: 25, Search: "_x"}

		_, filtered, err := listing.Fetch(db, p, listing.Options{SearchColumns: []string{"name"}}, &rooms)
		Expect(err).NotTo(HaveOccurred())
		Expect(filtered).To(Equal(int64(1)))
	})

	It("applies the filter to both counts and preloads on the page only", func() {
		var rooms []locationDatamodel.Room
		p := transport.ListParams{Length: 25}
		opts := listing.Options{
			Preloads: []string{"Building"},
			Filter: func(q *gorm.DB) *gorm.DB {
				return q.Where("building_id = ?", other.ID)
			},
		}

		total, filtered, err := listing.Fetch(db, p, opts, &rooms)
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
		Expect(filtered).To(Equal(int64(1)))
		Expect(rooms[0].Building).NotTo(BeNil())
		Expect(rooms[0].Building.Name).To(Equal("Buena Vista"))
	})
})
