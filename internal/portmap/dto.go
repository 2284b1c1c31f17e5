package portmap

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

// PortDTO creates a port. Room and jack are fixed once the port exists.
type PortDTO struct {
	RoomID     int64  `json:"room_id"`
	Jack       string `json:"jack"`
	SwitchIP   string `json:"switch_ip"`
	SwitchName string `json:"switch_name"`
	Blade      int64  `json:"blade"`
	Port       int64  `json:"port"`
	VLAN       string `json:"vlan"`
}

func (dto *PortDTO) Validate() *errors.AppError {
	dto.Jack = strings.ToUpper(strings.TrimSpace(dto.Jack))
	v := validation.NewValidator()
	v.Field("room_id", dto.RoomID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	v.Field("jack", dto.Jack).Required().MaxLength(5)
	validateSwitch(v, dto.SwitchIP, dto.SwitchName, dto.Blade, dto.Port, dto.VLAN)
	return v.Validate()
}

type PortUpdateDTO struct {
	SwitchIP   string `json:"switch_ip"`
	SwitchName string `json:"switch_name"`
	Blade      int64  `json:"blade"`
	Port       int64  `json:"port"`
	VLAN       string `json:"vlan"`
}

func (dto *PortUpdateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	validateSwitch(v, dto.SwitchIP, dto.SwitchName, dto.Blade, dto.Port, dto.VLAN)
	return v.Validate()
}

func validateSwitch(v *validation.ValidationBuilder, ip, name string, blade, port int64, vlan string) {
	v.Field("switch_ip", strings.TrimSpace(ip)).Required().IPv4()
	v.Field("switch_name", strings.TrimSpace(name)).Required().MaxLength(35)
	v.Field("blade", blade).MinInt(0, errors.ErrCodeValidationFailed).MaxInt(99, errors.ErrCodeValidationFailed)
	v.Field("port", port).MinInt(1, errors.ErrCodeValidationFailed).MaxInt(999, errors.ErrCodeValidationFailed)
	v.Field("vlan", strings.TrimSpace(vlan)).Required().MaxLength(7)
}

type PortStatusDTO struct {
	Active bool `json:"active"`
}

type AccessPointDTO struct {
	Name         string `json:"name"`
	PortID       int64  `json:"port_id"`
	PropertyID   string `json:"property_id"`
	SerialNumber string `json:"serial_number"`
	MACAddress   string `json:"mac_address"`
	IPAddress    string `json:"ip_address"`
	Type         string `json:"type"`
}

func (dto *AccessPointDTO) Validate() *errors.AppError {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.MACAddress = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(dto.MACAddress), "-", ":"))
	dto.IPAddress = strings.TrimSpace(dto.IPAddress)
	dto.Type = strings.ToLower(strings.TrimSpace(dto.Type))

	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(30)
	v.Field("port_id", dto.PortID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	v.Field("property_id", dto.PropertyID).MaxLength(7)
	v.Field("serial_number", dto.SerialNumber).MaxLength(20)
	v.Field("mac_address", dto.MACAddress).Required().MACAddress()
	v.Field("ip_address", dto.IPAddress).IPv4()
	v.Field("type", dto.Type).Required().OneOf(AccessPointType5G, AccessPointType24G, AccessPointTypeDual)
	return v.Validate()
}

type (
	PortPage        = transport.Page[*Port]
	AccessPointPage = transport.Page[*AccessPoint]
)
