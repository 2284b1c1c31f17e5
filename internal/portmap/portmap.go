package portmap

import (
	"time"

	portmapDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/portmap"
)

// Port is a wired jack in a residence hall room. Rooms live in the primary
// store, so RoomID is checked by the service rather than by a foreign key.
type Port struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	SwitchIP   string    `json:"switch_ip"`
	SwitchName string    `json:"switch_name"`
	Jack       string    `json:"jack"`
	Blade      int       `json:"blade"`
	Port       int       `json:"port"`
	VLAN       string    `json:"vlan"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func PortFromDataModel(p *portmapDatamodel.Port) *Port {
	return &Port{
		ID:         p.ID,
		RoomID:     p.RoomID,
		SwitchIP:   p.SwitchIP,
		SwitchName: p.SwitchName,
		Jack:       p.Jack,
		Blade:      p.Blade,
		Port:       p.PortNumber,
		VLAN:       p.VLAN,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

const (
	AccessPointType5G   = "5ghz"
	AccessPointType24G  = "2.4ghz"
	AccessPointTypeDual = "dual"
)

type AccessPoint struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PortID       int64     `json:"port_id"`
	Jack         string    `json:"jack,omitempty"`
	PropertyID   string    `json:"property_id"`
	SerialNumber string    `json:"serial_number"`
	MACAddress   string    `json:"mac_address"`
	IPAddress    string    `json:"ip_address"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func AccessPointFromDataModel(a *portmapDatamodel.AccessPoint) *AccessPoint {
	out := &AccessPoint{
		ID:           a.ID,
		Name:         a.Name,
		PortID:       a.PortID,
		PropertyID:   a.PropertyID,
		SerialNumber: a.SerialNumber,
		MACAddress:   a.MACAddress,
		IPAddress:    a.IPAddress,
		Type:         a.Type,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Port != nil {
		out.Jack = a.Port.Jack
	}
	return out
}
