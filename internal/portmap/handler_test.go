package portmap_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	"github.com/rowalls/uh-internal-project/internal/portmap"
	portmapPostgres "github.com/rowalls/uh-internal-project/internal/portmap/postgres"
	"github.com/rowalls/uh-internal-project/internal/testutil"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	var router chi.Router

	BeforeEach(func() {
		db, err := testutil.OpenPortmap()
		Expect(err).NotTo(HaveOccurred())
		svc := portmap.NewService(portmapPostgres.NewPortmapRepository(db), stubRooms{12: {ID: 12}}, logger.Discard())
		h := portmap.NewHandler(transport.NewBaseHandler(logger.Discard()), svc)

		router = chi.NewRouter()
		router.Get("/ports", h.ListPorts)
		router.Post("/ports", h.CreatePort)
		router.Delete("/ports/{id}", h.DeletePort)
	})

	It("creates a port and lists it as a page", func() {
		body := `{"room_id":12,"jack":"d1","switch_ip":"10.0.0.1","switch_name":"sw","blade":0,"port":1,"vlan":"resnet"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ports", strings.NewReader(body)))
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ports?room_id=12&length=10", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"records_total":1`))
		Expect(rec.Body.String()).To(ContainSubstring(`"jack":"D1"`))
	})

	It("rejects unknown fields", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ports", strings.NewReader(`{"room_id":12,"color":"blue"}`)))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a malformed room filter", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ports?room_id=abc", nil))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 when deleting a missing port", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/ports/77", nil))
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})
})
