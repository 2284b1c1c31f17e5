package inventory

import (
	"context"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	ListComputers(ctx context.Context, p transport.ListParams) (ComputerPage, error)
	GetComputer(ctx context.Context, id int64) (*Computer, error)
	CreateComputer(ctx context.Context, dto *ComputerDTO) (*Computer, error)
	UpdateComputer(ctx context.Context, id int64, dto *ComputerDTO) (*Computer, error)
	DeleteComputer(ctx context.Context, id int64) error

	ListPrinters(ctx context.Context, p transport.ListParams) (PrinterPage, error)
	GetPrinter(ctx context.Context, id int64) (*Printer, error)
	CreatePrinter(ctx context.Context, dto *PrinterDTO) (*Printer, error)
	UpdatePrinter(ctx context.Context, id int64, dto *PrinterDTO) (*Printer, error)
	DeletePrinter(ctx context.Context, id int64) error

	ListRequests(ctx context.Context, p transport.ListParams, status string) (RequestPage, error)
	CreateRequest(ctx context.Context, u *coreuser.User, dto *PrinterRequestDTO) (*PrinterRequest, error)
	AdvanceRequest(ctx context.Context, id int64, dto *RequestStatusDTO) (*PrinterRequest, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// ListComputers handles GET /computers
func (h *Handler) ListComputers(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.ListComputers(r.Context(), transport.ParseListParams(r, ComputerSortColumns...))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// GetComputer handles GET /computers/{id}
func (h *Handler) GetComputer(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.GetComputer(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

// CreateComputer handles POST /computers
func (h *Handler) CreateComputer(w http.ResponseWriter, r *http.Request) {
	var dto ComputerDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.CreateComputer(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

// UpdateComputer handles PUT /computers/{id}
func (h *Handler) UpdateComputer(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto ComputerDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.UpdateComputer(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

// DeleteComputer handles DELETE /computers/{id}
func (h *Handler) DeleteComputer(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeleteComputer)
}

// ListPrinters handles GET /printers
func (h *Handler) ListPrinters(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.ListPrinters(r.Context(), transport.ParseListParams(r, PrinterSortColumns...))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// GetPrinter handles GET /printers/{id}
func (h *Handler) GetPrinter(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	p, err := h.Service.GetPrinter(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// CreatePrinter handles POST /printers
func (h *Handler) CreatePrinter(w http.ResponseWriter, r *http.Request) {
	var dto PrinterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	p, err := h.Service.CreatePrinter(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

// UpdatePrinter handles PUT /printers/{id}
func (h *Handler) UpdatePrinter(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto PrinterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	p, err := h.Service.UpdatePrinter(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// DeletePrinter handles DELETE /printers/{id}
func (h *Handler) DeletePrinter(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeletePrinter)
}

// ListRequests handles GET /printer-requests?status=
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	p := transport.ParseListParams(r, RequestSortColumns...)
	page, err := h.Service.ListRequests(r.Context(), p, r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// CreateRequest handles POST /printer-requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var dto PrinterRequestDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	req, err := h.Service.CreateRequest(r.Context(), u, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, req)
}

// AdvanceRequest handles PATCH /printer-requests/{id}
func (h *Handler) AdvanceRequest(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto RequestStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	req, err := h.Service.AdvanceRequest(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
