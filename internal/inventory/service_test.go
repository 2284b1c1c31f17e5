package inventory_test

import (
	"context"
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/inventory"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockInventoryRepo struct {
	computers map[int64]*inventoryDatamodel.Computer
	printers  map[int64]*inventoryDatamodel.Printer
	requests  map[int64]*inventoryDatamodel.PrinterRequest
	nextID    int64
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{
		computers: map[int64]*inventoryDatamodel.Computer{},
		printers:  map[int64]*inventoryDatamodel.Printer{},
		requests:  map[int64]*inventoryDatamodel.PrinterRequest{},
	}
}

func (m *mockInventoryRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockInventoryRepo) ListComputers(context.Context, transport.ListParams) ([]*inventoryDatamodel.Computer, int64, int64, error) {
	out := []*inventoryDatamodel.Computer{}
	for _, c := range m.computers {
		out = append(out, c)
	}
	return out, int64(len(out)), int64(len(out)), nil
}

func (m *mockInventoryRepo) GetComputer(_ context.Context, id int64) (*inventoryDatamodel.Computer, error) {
	return m.computers[id], nil
}

func (m *mockInventoryRepo) GetComputerByDNSName(_ context.Context, dnsName string) (*inventoryDatamodel.Computer, error) {
	for _, c := range m.computers {
		if strings.EqualFold(c.DNSName, dnsName) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockInventoryRepo) CreateComputer(_ context.Context, c *inventoryDatamodel.Computer) error {
	c.ID = m.id()
	m.computers[c.ID] = c
	return nil
}

func (m *mockInventoryRepo) UpdateComputer(_ context.Context, c *inventoryDatamodel.Computer) error {
	m.computers[c.ID] = c
	return nil
}

func (m *mockInventoryRepo) DeleteComputer(_ context.Context, id int64) error {
	delete(m.computers, id)
	return nil
}

func (m *mockInventoryRepo) ListPrinters(context.Context, transport.ListParams) ([]*inventoryDatamodel.Printer, int64, int64, error) {
	out := []*inventoryDatamodel.Printer{}
	for _, p := range m.printers {
		out = append(out, p)
	}
	return out, int64(len(out)), int64(len(out)), nil
}

func (m *mockInventoryRepo) GetPrinter(_ context.Context, id int64) (*inventoryDatamodel.Printer, error) {
	return m.printers[id], nil
}

func (m *mockInventoryRepo) CreatePrinter(_ context.Context, p *inventoryDatamodel.Printer) error {
	p.ID = m.id()
	m.printers[p.ID] = p
	return nil
}

func (m *mockInventoryRepo) UpdatePrinter(_ context.Context, p *inventoryDatamodel.Printer) error {
	m.printers[p.ID] = p
	return nil
}

func (m *mockInventoryRepo) DeletePrinter(_ context.Context, id int64) error {
	delete(m.printers, id)
	return nil
}

func (m *mockInventoryRepo) ListRequests(_ context.Context, _ transport.ListParams, status string) ([]*inventoryDatamodel.PrinterRequest, int64, int64, error) {
	out := []*inventoryDatamodel.PrinterRequest{}
	for _, r := range m.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, int64(len(m.requests)), int64(len(out)), nil
}

func (m *mockInventoryRepo) GetRequest(_ context.Context, id int64) (*inventoryDatamodel.PrinterRequest, error) {
	return m.requests[id], nil
}

func (m *mockInventoryRepo) CreateRequest(_ context.Context, r *inventoryDatamodel.PrinterRequest) error {
	r.ID = m.id()
	m.requests[r.ID] = r
	return nil
}

func (m *mockInventoryRepo) UpdateRequestStatus(_ context.Context, id int64, status string) error {
	m.requests[id].Status = status
	return nil
}

func (m *mockInventoryRepo) CountOutstandingRequests(context.Context) (int64, error) {
	var n int64
	for _, r := range m.requests {
		if r.Status != inventory.RequestDelivered {
			n++
		}
	}
	return n, nil
}

type stubRooms map[int64]*location.Room

func (s stubRooms) GetRoom(_ context.Context, id int64) (*location.Room, error) {
	room, ok := s[id]
	if !ok {
		return nil, errors.NewNotFoundError("room not found", errors.ErrCodeRecordNotFound)
	}
	return room, nil
}

func codeOf(err error) errors.ErrorCode {
	appErr, ok := errors.IsAppError(err)
	Expect(ok).To(BeTrue())
	if details, ok := appErr.Details.(errors.ValidationErrors); ok && len(details.Errors) > 0 {
		return errors.ErrorCode(details.Errors[0].Code)
	}
	return appErr.Code
}

var _ = Describe("Service", func() {
	var (
		ctx  context.Context
		repo *mockInventoryRepo
		svc  *inventory.Service
		jane *coreuser.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockInventoryRepo()
		svc = inventory.NewService(repo, stubRooms{7: {ID: 7, Name: "A101"}}, ".housing.example.edu", logger.Discard())
		jane = &coreuser.User{ID: 3, Username: "jdoe"}
	})

	Describe("computers", func() {
		It("derives the DNS name from the display name", func() {
			c, err := svc.CreateComputer(ctx, validComputer())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.DNSName).To(Equal("RESNET-PC01.housing.example.edu"))
			Expect(c.DN).To(Equal("CN=RESNET-PC01, OU=Computers, DC=example, DC=edu"))
		})

		It("refuses a second computer with the same name", func() {
			_, err := svc.CreateComputer(ctx, validComputer())
			Expect(err).NotTo(HaveOccurred())

			dto := validComputer()
			dto.DisplayName = "resnet-pc01"
			_, err = svc.CreateComputer(ctx, dto)
			Expect(codeOf(err)).To(Equal(errors.ErrCodeDuplicateRecord))
		})

		It("keeps its own name on update", func() {
			c, _ := svc.CreateComputer(ctx, validComputer())

			dto := validComputer()
			dto.Description = "front desk"
			updated, err := svc.UpdateComputer(ctx, c.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Description).To(Equal("front desk"))
		})

		It("checks the room exists", func() {
			dto := validComputer()
			dto.RoomID = ptr(int64(99))
			_, err := svc.CreateComputer(ctx, dto)
			Expect(codeOf(err)).To(Equal(errors.ErrCodeRecordNotFound))

			dto = validComputer()
			dto.RoomID = ptr(int64(7))
			c, err := svc.CreateComputer(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(*c.RoomID).To(Equal(int64(7)))
		})

		It("formats the purchase date", func() {
			dto := validComputer()
			dto.DatePurchased = ptr("2019-08-15")
			c, err := svc.CreateComputer(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(*c.DatePurchased).To(Equal("2019-08-15"))
		})

		It("returns not found when deleting a missing computer", func() {
			Expect(codeOf(svc.DeleteComputer(ctx, 5))).To(Equal(errors.ErrCodeRecordNotFound))
		})
	})

	Describe("printer requests", func() {
		var printer *inventory.Printer

		BeforeEach(func() {
			var err error
			printer, err = svc.CreatePrinter(ctx, &inventory.PrinterDTO{
				DisplayName: "Front Desk LaserJet",
				MACAddress:  "00:11:22:33:44:55",
				Model:       "M402",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("opens requests for an existing printer", func() {
			req, err := svc.CreateRequest(ctx, jane, &inventory.PrinterRequestDTO{PrinterID: printer.ID, Item: "Black toner", Quantity: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(inventory.RequestOpen))
			Expect(req.RequestedBy).To(Equal(jane.ID))
			Expect(req.Printer).To(Equal("Front Desk LaserJet"))

			_, err = svc.CreateRequest(ctx, jane, &inventory.PrinterRequestDTO{PrinterID: 404, Item: "Paper"})
			Expect(codeOf(err)).To(Equal(errors.ErrCodeRecordNotFound))
		})

		It("moves requests forward only", func() {
			req, _ := svc.CreateRequest(ctx, jane, &inventory.PrinterRequestDTO{PrinterID: printer.ID, Item: "Drum"})

			advanced, err := svc.AdvanceRequest(ctx, req.ID, &inventory.RequestStatusDTO{Status: inventory.RequestOrdered})
			Expect(err).NotTo(HaveOccurred())
			Expect(advanced.Status).To(Equal(inventory.RequestOrdered))

			_, err = svc.AdvanceRequest(ctx, req.ID, &inventory.RequestStatusDTO{Status: inventory.RequestOpen})
			Expect(codeOf(err)).To(Equal(errors.ErrCodeInvalidStatus))
		})

		It("counts requests that were not delivered", func() {
			a, _ := svc.CreateRequest(ctx, jane, &inventory.PrinterRequestDTO{PrinterID: printer.ID, Item: "Toner"})
			_, _ = svc.CreateRequest(ctx, jane, &inventory.PrinterRequestDTO{PrinterID: printer.ID, Item: "Paper"})
			_, err := svc.AdvanceRequest(ctx, a.ID, &inventory.RequestStatusDTO{Status: inventory.RequestDelivered})
			Expect(err).NotTo(HaveOccurred())

			n, err := svc.CountOutstanding(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})

		It("rejects unknown status filters", func() {
			_, err := svc.ListRequests(ctx, transport.ListParams{Length: 25}, "lost")
			Expect(codeOf(err)).To(Equal(errors.ErrCodeInvalidStatus))
		})
	})
})
