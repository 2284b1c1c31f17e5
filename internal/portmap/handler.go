package portmap

import (
	"context"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	ListPorts(ctx context.Context, p transport.ListParams, filter PortFilter) (PortPage, error)
	GetPort(ctx context.Context, id int64) (*Port, error)
	CreatePort(ctx context.Context, dto *PortDTO) (*Port, error)
	UpdatePort(ctx context.Context, id int64, dto *PortUpdateDTO) (*Port, error)
	SetActive(ctx context.Context, id int64, dto *PortStatusDTO) (*Port, error)
	DeletePort(ctx context.Context, id int64) error

	ListAccessPoints(ctx context.Context, p transport.ListParams) (AccessPointPage, error)
	CreateAccessPoint(ctx context.Context, dto *AccessPointDTO) (*AccessPoint, error)
	UpdateAccessPoint(ctx context.Context, id int64, dto *AccessPointDTO) (*AccessPoint, error)
	DeleteAccessPoint(ctx context.Context, id int64) error
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

// ListPorts handles GET /ports?room_id=
func (h *Handler) ListPorts(w http.ResponseWriter, r *http.Request) {
	roomID, err := h.OptionalIDQuery(r, "room_id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, err := h.Service.ListPorts(r.Context(), transport.ParseListParams(r, PortSortColumns...), PortFilter{RoomID: roomID})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// GetPort handles GET /ports/{id}
func (h *Handler) GetPort(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	port, err := h.Service.GetPort(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, port)
}

// CreatePort handles POST /ports
func (h *Handler) CreatePort(w http.ResponseWriter, r *http.Request) {
	var dto PortDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	port, err := h.Service.CreatePort(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, port)
}

// UpdatePort handles PUT /ports/{id}
func (h *Handler) UpdatePort(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto PortUpdateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	port, err := h.Service.UpdatePort(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, port)
}

// SetActive handles PATCH /ports/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto PortStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	port, err := h.Service.SetActive(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, port)
}

// DeletePort handles DELETE /ports/{id}
func (h *Handler) DeletePort(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeletePort)
}

// ListAccessPoints handles GET /access-points
func (h *Handler) ListAccessPoints(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.ListAccessPoints(r.Context(), transport.ParseListParams(r, AccessPointSortColumns...))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// CreateAccessPoint handles POST /access-points
func (h *Handler) CreateAccessPoint(w http.ResponseWriter, r *http.Request) {
	var dto AccessPointDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	ap, err := h.Service.CreateAccessPoint(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ap)
}

// UpdateAccessPoint handles PUT /access-points/{id}
func (h *Handler) UpdateAccessPoint(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto AccessPointDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	ap, err := h.Service.UpdateAccessPoint(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ap)
}

// DeleteAccessPoint handles DELETE /access-points/{id}
func (h *Handler) DeleteAccessPoint(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeleteAccessPoint)
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
