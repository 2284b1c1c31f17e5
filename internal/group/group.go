package group

import (
	"time"

	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
)

// Group is a directory group mirrored locally so permission classes can
// reference it.
type Group struct {
	ID                int64     `json:"id"`
	DistinguishedName string    `json:"distinguished_name"`
	DisplayName       string    `json:"display_name"`
	CreatedAt         time.Time `json:"created_at"`
}

type Member struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func FromDataModel(g *directoryDatamodel.Group) *Group {
	return &Group{
		ID:                g.ID,
		DistinguishedName: g.DistinguishedName,
		DisplayName:       g.DisplayName,
		CreatedAt:         g.CreatedAt,
	}
}
