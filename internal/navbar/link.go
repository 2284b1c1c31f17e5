package navbar

import (
	"strings"
	"time"

	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
)

// Link is one entry of the global navigation list.
type Link struct {
	ID                 int64     `json:"id"`
	DisplayName        string    `json:"display_name"`
	ParentID           *int64    `json:"parent_id,omitempty"`
	SequenceIndex      int       `json:"sequence_index"`
	RouteName          *string   `json:"route_name,omitempty"`
	ExternalURL        *string   `json:"external_url,omitempty"`
	Onclick            *string   `json:"onclick,omitempty"`
	Icon               *string   `json:"icon,omitempty"`
	ShowToAll          bool      `json:"show_to_all"`
	PermissionClassIDs []int64   `json:"permission_class_ids"`
	PermissionClasses  []string  `json:"permission_classes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HTMLID is the lower-cased display name with spaces replaced by underscores.
func (l *Link) HTMLID() string {
	return strings.ReplaceAll(strings.ToLower(l.DisplayName), " ", "_")
}

// Target opens external links in a new window.
func (l *Link) Target() string {
	if hasValue(l.ExternalURL) {
		return "_blank"
	}
	return "_self"
}

func (l *Link) IsTopLevel() bool {
	return l.ParentID == nil
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func FromDataModel(l *navbarDatamodel.Link) *Link {
	ids := make([]int64, 0, len(l.PermissionClasses))
	names := make([]string, 0, len(l.PermissionClasses))
	for _, c := range l.PermissionClasses {
		ids = append(ids, c.ID)
		names = append(names, c.Name)
	}
	return &Link{
		ID:                 l.ID,
		DisplayName:        l.DisplayName,
		ParentID:           l.ParentID,
		SequenceIndex:      l.SequenceIndex,
		RouteName:          l.RouteName,
		ExternalURL:        l.ExternalURL,
		Onclick:            l.Onclick,
		Icon:               l.Icon,
		ShowToAll:          l.ShowToAll,
		PermissionClassIDs: ids,
		PermissionClasses:  names,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
