package location_test

import (
	"context"

	errors "github.com/rowalls/uh-internal-project/internal"
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockLocationRepo struct {
	communities map[int64]*locationDatamodel.Community
	buildings   map[int64]*locationDatamodel.Building
	rooms       map[int64]*locationDatamodel.Room
	nextID      int64
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{
		communities: map[int64]*locationDatamodel.Community{},
		buildings:   map[int64]*locationDatamodel.Building{},
		rooms:       map[int64]*locationDatamodel.Room{},
	}
}

func (m *mockLocationRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockLocationRepo) ListCommunities(context.Context) ([]*locationDatamodel.Community, error) {
	out := []*locationDatamodel.Community{}
	for _, c := range m.communities {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockLocationRepo) GetCommunity(_ context.Context, id int64) (*locationDatamodel.Community, error) {
	return m.communities[id], nil
}

func (m *mockLocationRepo) CreateCommunity(_ context.Context, c *locationDatamodel.Community) error {
	c.ID = m.id()
	m.communities[c.ID] = c
	return nil
}

func (m *mockLocationRepo) DeleteCommunity(_ context.Context, id int64) error {
	delete(m.communities, id)
	return nil
}

func (m *mockLocationRepo) ListBuildings(_ context.Context, communityID *int64) ([]*locationDatamodel.Building, error) {
	out := []*locationDatamodel.Building{}
	for _, b := range m.buildings {
		if communityID == nil || b.CommunityID == *communityID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockLocationRepo) GetBuilding(_ context.Context, id int64) (*locationDatamodel.Building, error) {
	return m.buildings[id], nil
}

func (m *mockLocationRepo) CreateBuilding(_ context.Context, b *locationDatamodel.Building) error {
	b.ID = m.id()
	m.buildings[b.ID] = b
	return nil
}

func (m *mockLocationRepo) DeleteBuilding(_ context.Context, id int64) error {
	delete(m.buildings, id)
	return nil
}

func (m *mockLocationRepo) ListRooms(_ context.Context, _ transport.ListParams, filter location.RoomFilter) ([]*locationDatamodel.Room, int64, int64, error) {
	out := []*locationDatamodel.Room{}
	for _, r := range m.rooms {
		if filter.BuildingID == nil || r.BuildingID == *filter.BuildingID {
			out = append(out, r)
		}
	}
	return out, int64(len(m.rooms)), int64(len(out)), nil
}

func (m *mockLocationRepo) GetRoom(_ context.Context, id int64) (*locationDatamodel.Room, error) {
	return m.rooms[id], nil
}

func (m *mockLocationRepo) CreateRoom(_ context.Context, r *locationDatamodel.Room) error {
	r.ID = m.id()
	m.rooms[r.ID] = r
	return nil
}

func (m *mockLocationRepo) UpdateRoom(_ context.Context, r *locationDatamodel.Room) error {
	m.rooms[r.ID] = r
	return nil
}

func (m *mockLocationRepo) DeleteRoom(_ context.Context, id int64) error {
	delete(m.rooms, id)
	return nil
}

func (m *mockLocationRepo) CountBuildings(_ context.Context, communityID int64) (int64, error) {
	bs, _ := m.ListBuildings(context.Background(), &communityID)
	return int64(len(bs)), nil
}

func (m *mockLocationRepo) CountRooms(_ context.Context, buildingID int64) (int64, error) {
	_, _, filtered, _ := m.ListRooms(context.Background(), transport.ListParams{}, location.RoomFilter{BuildingID: &buildingID})
	return filtered, nil
}

func fieldOf(err error) string {
	appErr, ok := errors.IsAppError(err)
	Expect(ok).To(BeTrue())
	details, ok := appErr.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors[0].Field
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		repo      *mockLocationRepo
		svc       *location.Service
		community *location.Community
		building  *location.Building
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		repo = newMockLocationRepo()
		svc = location.NewService(repo, logger.Discard())

		community, err = svc.CreateCommunity(ctx, &location.CommunityDTO{Name: " Poly Canyon Village "})
		Expect(err).NotTo(HaveOccurred())
		building, err = svc.CreateBuilding(ctx, &location.BuildingDTO{Name: "Aliso", CommunityID: community.ID})
		Expect(err).NotTo(HaveOccurred())
	})

	It("trims community names", func() {
		Expect(community.Name).To(Equal("Poly Canyon Village"))
		Expect(building.CommunityName).To(Equal("Poly Canyon Village"))
	})

	It("rejects buildings in unknown communities", func() {
		_, err := svc.CreateBuilding(ctx, &location.BuildingDTO{Name: "Ghost", CommunityID: 99})
		Expect(fieldOf(err)).To(Equal("community_id"))
	})

	It("upper-cases room names on create and update", func() {
		room, err := svc.CreateRoom(ctx, &location.RoomDTO{Name: "a101", BuildingID: building.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(room.Name).To(Equal("A101"))
		Expect(room.FullName()).To(Equal("Aliso A101"))

		room, err = svc.UpdateRoom(ctx, room.ID, &location.RoomDTO{Name: " b2 ", BuildingID: building.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(room.Name).To(Equal("B2"))
	})

	It("validates room fields", func() {
		_, err := svc.CreateRoom(ctx, &location.RoomDTO{Name: "TOOLONGROOMNAME", BuildingID: building.ID})
		Expect(fieldOf(err)).To(Equal("name"))

		_, err = svc.CreateRoom(ctx, &location.RoomDTO{Name: "A1", BuildingID: 42})
		Expect(fieldOf(err)).To(Equal("building_id"))
	})

	It("pages rooms of one building", func() {
		_, _ = svc.CreateRoom(ctx, &location.RoomDTO{Name: "A1", BuildingID: building.ID})
		_, _ = svc.CreateRoom(ctx, &location.RoomDTO{Name: "A2", BuildingID: building.ID})

		page, err := svc.ListRooms(ctx, transport.ListParams{Length: 25}, location.RoomFilter{BuildingID: &building.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Data).To(HaveLen(2))
		Expect(page.RecordsFiltered).To(Equal(int64(2)))
		Expect(page.Length).To(Equal(25))
	})

	It("looks up a building with its community", func() {
		found, err := svc.GetBuilding(ctx, building.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Name).To(Equal("Aliso"))
		Expect(found.CommunityName).To(Equal("Poly Canyon Village"))

		_, err = svc.GetBuilding(ctx, 404)
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(errors.ErrorTypeNotFound))
	})

	It("returns not found for missing rooms", func() {
		_, err := svc.GetRoom(ctx, 404)
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(errors.ErrorTypeNotFound))
	})

	It("refuses to delete parents that are still in use", func() {
		_, _ = svc.CreateRoom(ctx, &location.RoomDTO{Name: "A1", BuildingID: building.ID})

		err := svc.DeleteBuilding(ctx, building.ID)
		appErr, _ := errors.IsAppError(err)
		Expect(appErr.Code).To(Equal(errors.ErrCodeInUse))

		err = svc.DeleteCommunity(ctx, community.ID)
		appErr, _ = errors.IsAppError(err)
		Expect(appErr.Code).To(Equal(errors.ErrCodeInUse))
	})

	It("deletes empty parents", func() {
		Expect(svc.DeleteBuilding(ctx, building.ID)).To(Succeed())
		Expect(svc.DeleteCommunity(ctx, community.ID)).To(Succeed())
		Expect(repo.communities).To(BeEmpty())
	})
})
