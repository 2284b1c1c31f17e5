package portmap

import "time"

// Port is a residence-hall wired jack. RoomID references the primary store
// and is not enforced across databases.
type Port struct {
	ID         int64     `gorm:"primaryKey"`
	RoomID     int64     `gorm:"column:room_id;not null;index"`
	SwitchIP   string    `gorm:"column:switch_ip;not null;size:15"`
	SwitchName string    `gorm:"column:switch_name;not null;size:35"`
	Jack       string    `gorm:"column:jack;not null;size:5"`
	Blade      int       `gorm:"column:blade;not null"`
	PortNumber int       `gorm:"column:port;not null"`
	VLAN       string    `gorm:"column:vlan;not null;size:7"`
	Active     bool      `gorm:"column:active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Port) TableName() string {
	return "ports"
}

type AccessPoint struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null;size:30"`
	PortID       int64     `gorm:"column:port_id;not null;index"`
	Port         *Port     `gorm:"foreignKey:PortID"`
	PropertyID   string    `gorm:"column:property_id;size:7"`
	SerialNumber string    `gorm:"column:serial_number;size:20"`
	MACAddress   string    `gorm:"column:mac_address;size:17"`
	IPAddress    string    `gorm:"column:ip_address;size:15"`
	Type         string    `gorm:"column:type;size:16"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AccessPoint) TableName() string {
	return "access_points"
}
