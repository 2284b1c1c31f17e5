package inventory

import (
	"time"

	inventoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/inventory"
	"github.com/rowalls/uh-internal-project/internal/location"
)

const (
	RequestOpen      = "open"
	RequestOrdered   = "ordered"
	RequestDelivered = "delivered"
)

var requestOrder = map[string]int{
	RequestOpen:      0,
	RequestOrdered:   1,
	RequestDelivered: 2,
}

// CanAdvance reports whether a request may move from one status to another.
// Requests only move forward.
func CanAdvance(from, to string) bool {
	f, ok := requestOrder[from]
	if !ok {
		return false
	}
	t, ok := requestOrder[to]
	return ok && t > f
}

type Printer struct {
	ID           int64     `json:"id"`
	DisplayName  string    `json:"display_name"`
	DNSName      string    `json:"dns_name"`
	MACAddress   string    `json:"mac_address"`
	IPAddress    *string   `json:"ip_address"`
	Model        string    `json:"model"`
	SerialNumber *string   `json:"serial_number"`
	PropertyID   *string   `json:"property_id"`
	Location     *string   `json:"location"`
	Description  string    `json:"description"`
	RoomID       *int64    `json:"room_id"`
	Room         string    `json:"room,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func PrinterFromDataModel(p *inventoryDatamodel.Printer) *Printer {
	out := &Printer{
		ID:           p.ID,
		DisplayName:  p.DisplayName,
		DNSName:      p.DNSName,
		MACAddress:   p.MACAddress,
		IPAddress:    p.IPAddress,
		Model:        p.Model,
		SerialNumber: p.SerialNumber,
		PropertyID:   p.PropertyID,
		Location:     p.Location,
		Description:  p.Description,
		RoomID:       p.RoomID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Room != nil {
		out.Room = location.RoomFromDataModel(p.Room).FullName()
	}
	return out
}

type PrinterRequest struct {
	ID          int64     `json:"id"`
	PrinterID   int64     `json:"printer_id"`
	Printer     string    `json:"printer,omitempty"`
	Item        string    `json:"item"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	RequestedBy int64     `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func RequestFromDataModel(r *inventoryDatamodel.PrinterRequest) *PrinterRequest {
	out := &PrinterRequest{
		ID:          r.ID,
		PrinterID:   r.PrinterID,
		Item:        r.Item,
		Quantity:    r.Quantity,
		Status:      r.Status,
		RequestedBy: r.RequestedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Printer != nil {
		out.Printer = r.Printer.DisplayName
	}
	return out
}
