package location

import (
	"context"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	ListCommunities(ctx context.Context) ([]*Community, error)
	CreateCommunity(ctx context.Context, dto *CommunityDTO) (*Community, error)
	DeleteCommunity(ctx context.Context, id int64) error

	ListBuildings(ctx context.Context, communityID *int64) ([]*Building, error)
	CreateBuilding(ctx context.Context, dto *BuildingDTO) (*Building, error)
	DeleteBuilding(ctx context.Context, id int64) error

	ListRooms(ctx context.Context, p transport.ListParams, filter RoomFilter) (RoomPage, error)
	GetRoom(ctx context.Context, id int64) (*Room, error)
	CreateRoom(ctx context.Context, dto *RoomDTO) (*Room, error)
	UpdateRoom(ctx context.Context, id int64, dto *RoomDTO) (*Room, error)
	DeleteRoom(ctx context.Context, id int64) error
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

// ListCommunities handles GET /communities
func (h *Handler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := h.Service.ListCommunities(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CommunitiesResponse{Communities: communities})
}

// CreateCommunity handles POST /communities
func (h *Handler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	var dto CommunityDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	community, err := h.Service.CreateCommunity(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, community)
}

// DeleteCommunity handles DELETE /communities/{id}
func (h *Handler) DeleteCommunity(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeleteCommunity)
}

// ListBuildings handles GET /buildings?community_id=
func (h *Handler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	communityID, err := h.OptionalIDQuery(r, "community_id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	buildings, err := h.Service.ListBuildings(r.Context(), communityID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BuildingsResponse{Buildings: buildings})
}

// CreateBuilding handles POST /buildings
func (h *Handler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var dto BuildingDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	building, err := h.Service.CreateBuilding(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, building)
}

// DeleteBuilding handles DELETE /buildings/{id}
func (h *Handler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeleteBuilding)
}

// ListRooms handles GET /rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	buildingID, err := h.OptionalIDQuery(r, "building_id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	p := transport.ParseListParams(r, RoomSortColumns...)
	page, err := h.Service.ListRooms(r.Context(), p, RoomFilter{BuildingID: buildingID})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// GetRoom handles GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	room, err := h.Service.GetRoom(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, room)
}

// CreateRoom handles POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var dto RoomDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	room, err := h.Service.CreateRoom(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, room)
}

// UpdateRoom handles PUT /rooms/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto RoomDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	room, err := h.Service.UpdateRoom(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, room)
}

// DeleteRoom handles DELETE /rooms/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.Service.DeleteRoom)
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
