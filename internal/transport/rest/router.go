package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/rowalls/uh-internal-project/internal/auth"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/group"
	"github.com/rowalls/uh-internal-project/internal/inventory"
	"github.com/rowalls/uh-internal-project/internal/location"
	"github.com/rowalls/uh-internal-project/internal/navbar"
	"github.com/rowalls/uh-internal-project/internal/permission"
	"github.com/rowalls/uh-internal-project/internal/portmap"
	"github.com/rowalls/uh-internal-project/internal/roster"
	"github.com/rowalls/uh-internal-project/internal/transport/middleware"
	"github.com/rowalls/uh-internal-project/internal/transport/swagger"
	"github.com/rowalls/uh-internal-project/internal/user"
)

const (
	APIPrefix   = "/api/v1"
	OpenAPIPath = "./api/openapi.yml"
)

// Handlers groups every HTTP handler the router mounts. A nil handler leaves
// its routes unmounted.
type Handlers struct {
	Health     *HealthHandler
	Auth       *auth.Handler
	User       *user.Handler
	Navbar     *navbar.Handler
	Permission *permission.Handler
	Group      *group.Handler
	DailyDuty  *dailyduty.Handler
	Location   *location.Handler
	Inventory  *inventory.Handler
	Portmap    *portmap.Handler
	Roster     *roster.Handler
}

// NavbarRoutes maps the route names navbar links refer to onto API paths.
func NavbarRoutes() navbar.RouteTable {
	return navbar.RouteTable{
		"profile":          APIPrefix + "/users/me",
		"daily_duties":     APIPrefix + "/daily-duties",
		"communities":      APIPrefix + "/communities",
		"buildings":        APIPrefix + "/buildings",
		"rooms":            APIPrefix + "/rooms",
		"computers":        APIPrefix + "/computers",
		"printers":         APIPrefix + "/printers",
		"printer_requests": APIPrefix + "/printer-requests",
		"rosters":          APIPrefix + "/rosters",
		"csd_mappings":     APIPrefix + "/csd-mappings",
		"ports":            APIPrefix + "/ports",
		"access_points":    APIPrefix + "/access-points",
		"navbar_links":     APIPrefix + "/navbar/links",
		"groups":           APIPrefix + "/groups",
		"permissions":      APIPrefix + "/permission-classes",
	}
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, authz *permission.Authorization, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	router.Route(APIPrefix, func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Auth == nil {
			return
		}
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Post("/users/me/onboarding/{step}", h.User.CompleteOnboardingStep)
			}
			if h.Navbar != nil {
				registerNavbar(pr, h.Navbar, authz)
			}
			if h.Permission != nil {
				registerPermissions(pr, h.Permission, h.Group, authz)
			}
			if h.DailyDuty != nil {
				pr.Group(func(dr chi.Router) {
					dr.Use(authz.Require(permission.ClassDailyDuties))
					dr.Get("/daily-duties", h.DailyDuty.GetStatuses)
					dr.Post("/daily-duties/{name}/acknowledge", h.DailyDuty.Acknowledge)
				})
			}
			if h.Location != nil {
				registerLocations(pr, h.Location, authz)
			}
			if h.Inventory != nil {
				registerInventory(pr, h.Inventory, authz)
			}
			if h.Portmap != nil {
				registerPortmap(pr, h.Portmap, authz)
			}
			if h.Roster != nil {
				registerRosters(pr, h.Roster, authz)
			}
		})
	})
}

func registerNavbar(r chi.Router, h *navbar.Handler, authz *permission.Authorization) {
	r.Get("/navbar", h.GetNavbar)
	r.Get("/navbar.html", h.GetNavbarHTML)

	r.Group(func(ar chi.Router) {
		ar.Use(authz.Require(permission.ClassNavbarAdmin))
		ar.Get("/navbar/links", h.ListLinks)
		ar.Post("/navbar/links", h.CreateLink)
		ar.Put("/navbar/links/{id}", h.UpdateLink)
		ar.Delete("/navbar/links/{id}", h.DeleteLink)
	})
}

func registerPermissions(r chi.Router, h *permission.Handler, groups *group.Handler, authz *permission.Authorization) {
	r.Get("/permissions/check/{class}", h.CheckAccess)

	r.Group(func(ar chi.Router) {
		ar.Use(authz.Require(permission.ClassPermissionAdmin))
		ar.Get("/permission-classes", h.ListClasses)
		ar.Post("/permission-classes", h.CreateClass)
		ar.Post("/permission-classes/{id}/groups", h.GrantGroup)
		ar.Delete("/permission-classes/{id}/groups/{groupID}", h.RevokeGroup)

		if groups != nil {
			ar.Get("/groups", groups.ListGroups)
			ar.Post("/groups", groups.CreateGroup)
			ar.Delete("/groups/{id}", groups.DeleteGroup)
			ar.Get("/groups/{id}/members", groups.GetMembers)
		}
	})
}

func registerLocations(r chi.Router, h *location.Handler, authz *permission.Authorization) {
	r.Group(func(rr chi.Router) {
		// selects on the computer and port forms list locations too
		rr.Use(authz.Require(permission.ClassRooms, permission.ClassComputers, permission.ClassPortmap))
		rr.Get("/communities", h.ListCommunities)
		rr.Get("/buildings", h.ListBuildings)
		rr.Get("/rooms", h.ListRooms)
		rr.Get("/rooms/{id}", h.GetRoom)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(authz.Require(permission.ClassRoomsModify))
		mr.Post("/communities", h.CreateCommunity)
		mr.Delete("/communities/{id}", h.DeleteCommunity)
		mr.Post("/buildings", h.CreateBuilding)
		mr.Delete("/buildings/{id}", h.DeleteBuilding)
		mr.Post("/rooms", h.CreateRoom)
		mr.Put("/rooms/{id}", h.UpdateRoom)
		mr.Delete("/rooms/{id}", h.DeleteRoom)
	})
}

func registerInventory(r chi.Router, h *inventory.Handler, authz *permission.Authorization) {
	r.Group(func(cr chi.Router) {
		cr.Use(authz.Require(permission.ClassComputers))
		cr.Get("/computers", h.ListComputers)
		cr.Get("/computers/{id}", h.GetComputer)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(authz.Require(permission.ClassComputersModify))
		mr.Post("/computers", h.CreateComputer)
		mr.Put("/computers/{id}", h.UpdateComputer)
		mr.Delete("/computers/{id}", h.DeleteComputer)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(authz.Require(permission.ClassPrinters))
		pr.Get("/printers", h.ListPrinters)
		pr.Get("/printers/{id}", h.GetPrinter)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(authz.Require(permission.ClassPrintersModify))
		pr.Post("/printers", h.CreatePrinter)
		pr.Put("/printers/{id}", h.UpdatePrinter)
		pr.Delete("/printers/{id}", h.DeletePrinter)
	})

	// requests are worked from the daily duties queue
	r.Group(func(qr chi.Router) {
		qr.Use(authz.Require(permission.ClassDailyDuties))
		qr.Get("/printer-requests", h.ListRequests)
		qr.Post("/printer-requests", h.CreateRequest)
		qr.Patch("/printer-requests/{id}", h.AdvanceRequest)
	})
}

func registerPortmap(r chi.Router, h *portmap.Handler, authz *permission.Authorization) {
	r.Group(func(vr chi.Router) {
		vr.Use(authz.Require(permission.ClassPortmap))
		vr.Get("/ports", h.ListPorts)
		vr.Get("/ports/{id}", h.GetPort)
		vr.Get("/access-points", h.ListAccessPoints)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(authz.Require(permission.ClassPortmapModify))
		mr.Post("/ports", h.CreatePort)
		mr.Put("/ports/{id}", h.UpdatePort)
		mr.Patch("/ports/{id}/active", h.SetActive)
		mr.Delete("/ports/{id}", h.DeletePort)
		mr.Post("/access-points", h.CreateAccessPoint)
		mr.Put("/access-points/{id}", h.UpdateAccessPoint)
		mr.Delete("/access-points/{id}", h.DeleteAccessPoint)
	})
}

func registerRosters(r chi.Router, h *roster.Handler, authz *permission.Authorization) {
	r.Group(func(gr chi.Router) {
		gr.Use(authz.Require(permission.ClassRosters))
		gr.Get("/rosters/defaults", h.GetDefaults)
		gr.Post("/rosters", h.Generate)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(authz.Require(permission.ClassCSDAssignment))
		mr.Get("/csd-mappings", h.ListMappings)
		mr.Post("/csd-mappings", h.CreateMapping)
		mr.Put("/csd-mappings/{id}", h.UpdateMapping)
		mr.Delete("/csd-mappings/{id}", h.DeleteMapping)
	})
}
