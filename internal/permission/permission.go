package permission

import (
	"time"

	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
)

// Well-known permission classes that gate the HTTP surface.
const (
	ClassComputers       = "computers"
	ClassComputersModify = "computers_modify"
	ClassPrinters        = "printers"
	ClassPrintersModify  = "printers_modify"
	ClassRooms           = "rooms"
	ClassRoomsModify     = "rooms_modify"
	ClassPortmap         = "portmap"
	ClassPortmapModify   = "portmap_modify"
	ClassDailyDuties     = "daily_duties"
	ClassRosters         = "rosters"
	ClassCSDAssignment   = "csd_assignment"
	ClassNavbarAdmin     = "navbar_admin"
	ClassPermissionAdmin = "permission_admin"
)

// Class is a named capability granted to every member of its directory groups.
type Class struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Groups    []Group   `json:"groups"`
	CreatedAt time.Time `json:"created_at"`
}

type Group struct {
	ID                int64  `json:"id"`
	DistinguishedName string `json:"distinguished_name"`
	DisplayName       string `json:"display_name"`
}

func (c *Class) HasGroup(groupID int64) bool {
	for _, g := range c.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

func FromDataModel(c *permissionDatamodel.Class) *Class {
	groups := make([]Group, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, Group{
			ID:                g.ID,
			DistinguishedName: g.DistinguishedName,
			DisplayName:       g.DisplayName,
		})
	}
	return &Class{
		ID:        c.ID,
		Name:      c.Name,
		Groups:    groups,
		CreatedAt: c.CreatedAt,
	}
}
