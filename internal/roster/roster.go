package roster

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	rosterDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/roster"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"

	unknownCount = "?"
)

// CSVHeader is the first row of every exported roster.
var CSVHeader = []string{"community", "building", "room", "full_name", "alias", "email"}

// Mapping is a coordinator's domain and the buildings it covers.
type Mapping struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Domain           string  `json:"domain"`
	DirectoryGroupID int64   `json:"directory_group_id"`
	GroupName        string  `json:"directory_group,omitempty"`
	BuildingIDs      []int64 `json:"building_ids"`
}

type Resident struct {
	FullName string `json:"full_name"`
	Alias    string `json:"alias"`
	Email    string `json:"email"`
	Room     string `json:"room"`
}

// BuildingRoster lists the residents of one building. When the records system
// could not be reached for it, Unavailable is set and Count reads "?".
type BuildingRoster struct {
	BuildingID  int64      `json:"building_id"`
	Building    string     `json:"building"`
	Community   string     `json:"community"`
	Count       string     `json:"count"`
	Unavailable bool       `json:"unavailable,omitempty"`
	Residents   []Resident `json:"residents"`
}

type Roster struct {
	Buildings   []BuildingRoster `json:"buildings"`
	GeneratedAt time.Time        `json:"generated_at"`
}

func newBuildingRoster(id int64, building, community string, residents []Resident) BuildingRoster {
	return BuildingRoster{
		BuildingID: id,
		Building:   building,
		Community:  community,
		Count:      strconv.Itoa(len(residents)),
		Residents:  residents,
	}
}

func unavailableBuilding(id int64, building, community string) BuildingRoster {
	return BuildingRoster{
		BuildingID:  id,
		Building:    building,
		Community:   community,
		Count:       unknownCount,
		Unavailable: true,
		Residents:   []Resident{},
	}
}

// Complete reports whether every building was read.
func (r *Roster) Complete() bool {
	for _, b := range r.Buildings {
		if b.Unavailable {
			return false
		}
	}
	return true
}

// WriteCSV writes one row per resident under CSVHeader.
func (r *Roster) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, b := range r.Buildings {
		for _, res := range b.Residents {
			if err := cw.Write([]string{b.Community, b.Building, res.Room, res.FullName, res.Alias, res.Email}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func MappingFromDataModel(m *rosterDatamodel.CSDMapping) *Mapping {
	ids := make([]int64, 0, len(m.Buildings))
	for _, b := range m.Buildings {
		ids = append(ids, b.ID)
	}
	out := &Mapping{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Domain:           m.Domain,
		DirectoryGroupID: m.DirectoryGroupID,
		BuildingIDs:      ids,
	}
	if m.Group != nil {
		out.GroupName = m.Group.DisplayName
	}
	return out
}
