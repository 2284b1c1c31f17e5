package inventory

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
)

type Computer struct {
	ID            int64          `gorm:"primaryKey"`
	DisplayName   string         `gorm:"column:display_name;not null;size:60"`
	DNSName       string         `gorm:"column:dns_name;uniqueIndex;size:75"`
	MACAddress    string         `gorm:"column:mac_address;size:17"`
	IPAddress     *string        `gorm:"column:ip_address;size:15"`
	Model         string         `gorm:"column:model;size:25"`
	SerialNumber  *string        `gorm:"column:serial_number;size:20"`
	PropertyID    *string        `gorm:"column:property_id;size:7"`
	Location      *string        `gorm:"column:location;size:100"`
	DN            string         `gorm:"column:dn;size:250"`
	Description   string         `gorm:"column:description;size:100"`
	DatePurchased *time.Time     `gorm:"column:date_purchased"`
	RoomID        *int64         `gorm:"column:room_id;index"`
	Room          *location.Room `gorm:"foreignKey:RoomID"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Computer) TableName() string {
	return "computers"
}

type Printer struct {
	ID           int64          `gorm:"primaryKey"`
	DisplayName  string         `gorm:"column:display_name;not null;size:60"`
	DNSName      string         `gorm:"column:dns_name;size:75"`
	MACAddress   string         `gorm:"column:mac_address;size:17"`
	IPAddress    *string        `gorm:"column:ip_address;size:15"`
	Model        string         `gorm:"column:model;size:25"`
	SerialNumber *string        `gorm:"column:serial_number;size:20"`
	PropertyID   *string        `gorm:"column:property_id;size:7"`
	Location     *string        `gorm:"column:location;size:100"`
	Description  string         `gorm:"column:description;size:100"`
	RoomID       *int64         `gorm:"column:room_id;index"`
	Room         *location.Room `gorm:"foreignKey:RoomID"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Printer) TableName() string {
	return "printers"
}

type PrinterRequest struct {
	ID          int64     `gorm:"primaryKey"`
	PrinterID   int64     `gorm:"column:printer_id;not null;index"`
	Printer     *Printer  `gorm:"foreignKey:PrinterID"`
	Item        string    `gorm:"column:item;not null;size:60"`
	Quantity    int       `gorm:"column:quantity;not null;default:1"`
	Status      string    `gorm:"column:status;not null;size:16;index"`
	RequestedBy int64     `gorm:"column:requested_by;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PrinterRequest) TableName() string {
	return "printer_requests"
}
