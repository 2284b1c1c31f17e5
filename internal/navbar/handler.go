package navbar

import (
	"context"
	"net/http"

	"github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	Render(ctx context.Context, u *coreuser.User) (*Navbar, error)
	ListLinks(ctx context.Context) ([]*Link, error)
	CreateLink(ctx context.Context, dto LinkDTO) (*Link, error)
	UpdateLink(ctx context.Context, id int64, dto LinkDTO) (*Link, error)
	DeleteLink(ctx context.Context, id int64) error
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

// GetNavbar handles GET /navbar
func (h *Handler) GetNavbar(w http.ResponseWriter, r *http.Request) {
	nav, ok := h.render(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, nav)
}

// GetNavbarHTML handles GET /navbar.html
func (h *Handler) GetNavbarHTML(w http.ResponseWriter, r *http.Request) {
	nav, ok := h.render(w, r)
	if !ok {
		return
	}
	h.WriteHTML(w, http.StatusOK, []byte(nav.HTML))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) (*Navbar, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	nav, err := h.Service.Render(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, false
	}
	return nav, true
}

// ListLinks handles GET /navbar/links
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.ListLinks(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, LinksResponse{Links: links})
}

// CreateLink handles POST /navbar/links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var dto LinkDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	link, err := h.Service.CreateLink(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, link)
}

// UpdateLink handles PUT /navbar/links/{id}
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto LinkDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	link, err := h.Service.UpdateLink(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, link)
}

// DeleteLink handles DELETE /navbar/links/{id}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.DeleteLink(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
