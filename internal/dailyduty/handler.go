package dailyduty

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rowalls/uh-internal-project/internal"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ServiceAPI interface {
	Statuses(ctx context.Context, u *coreuser.User) ([]Status, error)
	Acknowledge(ctx context.Context, name string, u *coreuser.User) (*Status, error)
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

// GetStatuses handles GET /daily-duties
func (h *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	statuses, err := h.Service.Statuses(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, StatusesResponse{Duties: statuses})
}

// Acknowledge handles POST /daily-duties/{name}/acknowledge
func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	st, err := h.Service.Acknowledge(r.Context(), chi.URLParam(r, "name"), u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, st)
}
