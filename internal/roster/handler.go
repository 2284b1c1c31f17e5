package roster

import (
	"bytes"
	"context"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	ListMappings(ctx context.Context) ([]*Mapping, error)
	CreateMapping(ctx context.Context, dto *MappingDTO) (*Mapping, error)
	UpdateMapping(ctx context.Context, id int64, dto *MappingDTO) (*Mapping, error)
	DeleteMapping(ctx context.Context, id int64) error

	DefaultBuildings(ctx context.Context, u *coreuser.User) ([]int64, error)
	Generate(ctx context.Context, dto *GenerateDTO) (*Roster, error)
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

// GetDefaults handles GET /rosters/defaults
func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ids, err := h.Service.DefaultBuildings(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DefaultsResponse{BuildingIDs: ids})
}

// Generate handles POST /rosters?format=json|csv
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var dto GenerateDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if format := r.URL.Query().Get("format"); format != "" {
		dto.Format = format
	}

	roster, err := h.Service.Generate(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if dto.Format != FormatCSV {
		h.WriteJSON(w, http.StatusOK, roster)
		return
	}

	// a partial export would read as a complete one
	if !roster.Complete() {
		h.HandleServiceError(w, internal.NewExternalError("resident records are unavailable for some buildings", internal.ErrCodeRosterUnavailable, nil))
		return
	}
	var buf bytes.Buffer
	if err := roster.WriteCSV(&buf); err != nil {
		h.HandleServiceError(w, internal.NewInternalError("failed to write roster", err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ListMappings handles GET /csd-mappings
func (h *Handler) ListMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.Service.ListMappings(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MappingsResponse{Mappings: mappings})
}

// CreateMapping handles POST /csd-mappings
func (h *Handler) CreateMapping(w http.ResponseWriter, r *http.Request) {
	var dto MappingDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	m, err := h.Service.CreateMapping(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

// UpdateMapping handles PUT /csd-mappings/{id}
func (h *Handler) UpdateMapping(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto MappingDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	m, err := h.Service.UpdateMapping(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

// DeleteMapping handles DELETE /csd-mappings/{id}
func (h *Handler) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.DeleteMapping(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
