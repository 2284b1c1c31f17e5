package permission

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	HasAccess(ctx context.Context, username, class string) (bool, error)
	ListClasses(ctx context.Context) ([]*Class, error)
	CreateClass(ctx context.Context, dto CreateClassDTO) (*Class, error)
	GrantGroup(ctx context.Context, classID int64, dto GrantGroupDTO) (*Class, error)
	RevokeGroup(ctx context.Context, classID, groupID int64) (*Class, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CheckAccess handles GET /permissions/check/{class} for the current user.
func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	class := chi.URLParam(r, "class")
	granted, err := h.Service.HasAccess(r.Context(), user.Username, class)
	if err != nil {
		h.Logger.Error("CheckAccess: lookup failed", "username", user.Username, "class", class, "error", err)
		h.WriteError(w, http.StatusServiceUnavailable, "unable to verify permissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, AccessResponse{Class: class, HasAccess: granted})
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.Service.ListClasses(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClassesResponse{Classes: classes})
}

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var dto CreateClassDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	class, err := h.Service.CreateClass(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, class)
}

func (h *Handler) GrantGroup(w http.ResponseWriter, r *http.Request) {
	classID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto GrantGroupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	class, err := h.Service.GrantGroup(r.Context(), classID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, class)
}

func (h *Handler) RevokeGroup(w http.ResponseWriter, r *http.Request) {
	classID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	groupID, err := h.IDParam(r, "groupID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	class, err := h.Service.RevokeGroup(r.Context(), classID, groupID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, class)
}
