package location

import (
	locationDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
)

type Community struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Building struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CommunityID   int64  `json:"community_id"`
	CommunityName string `json:"community,omitempty"`
}

type Room struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	BuildingID    int64  `json:"building_id"`
	BuildingName  string `json:"building,omitempty"`
	CommunityName string `json:"community,omitempty"`
}

func CommunityFromDataModel(c *locationDatamodel.Community) *Community {
	return &Community{ID: c.ID, Name: c.Name}
}

func BuildingFromDataModel(b *locationDatamodel.Building) *Building {
	out := &Building{ID: b.ID, Name: b.Name, CommunityID: b.CommunityID}
	if b.Community != nil {
		out.CommunityName = b.Community.Name
	}
	return out
}

func RoomFromDataModel(r *locationDatamodel.Room) *Room {
	out := &Room{ID: r.ID, Name: r.Name, BuildingID: r.BuildingID}
	if r.Building != nil {
		out.BuildingName = r.Building.Name
		if r.Building.Community != nil {
			out.CommunityName = r.Building.Community.Name
		}
	}
	return out
}

// FullName renders a room as "Community Building Room" when its parents are loaded.
func (r *Room) FullName() string {
	name := r.Name
	if r.BuildingName != "" {
		name = r.BuildingName + " " + name
	}
	if r.CommunityName != "" {
		name = r.CommunityName + " " + name
	}
	return name
}
