package inventory

import (
	"time"

	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	"github.com/rowalls/uh-internal-project/internal/location"
)

const DateLayout = "2006-01-02"

type Computer struct {
	ID            int64     `json:"id"`
	DisplayName   string    `json:"display_name"`
	DNSName       string    `json:"dns_name"`
	MACAddress    string    `json:"mac_address"`
	IPAddress     *string   `json:"ip_address"`
	Model         string    `json:"model"`
	SerialNumber  *string   `json:"serial_number"`
	PropertyID    *string   `json:"property_id"`
	Location      *string   `json:"location"`
	DN            string    `json:"dn"`
	Description   string    `json:"description"`
	DatePurchased *string   `json:"date_purchased"`
	RoomID        *int64    `json:"room_id"`
	Room          string    `json:"room,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ComputerFromDataModel(c *inventoryDatamodel.Computer) *Computer {
	out := &Computer{
		ID:           c.ID,
		DisplayName:  c.DisplayName,
		DNSName:      c.DNSName,
		MACAddress:   c.MACAddress,
		IPAddress:    c.IPAddress,
		Model:        c.Model,
		SerialNumber: c.SerialNumber,
		PropertyID:   c.PropertyID,
		Location:     c.Location,
		DN:           c.DN,
		Description:  c.Description,
		RoomID:       c.RoomID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.DatePurchased != nil {
		d := c.DatePurchased.Format(DateLayout)
		out.DatePurchased = &d
	}
	if c.Room != nil {
		out.Room = location.RoomFromDataModel(c.Room).FullName()
	}
	return out
}
