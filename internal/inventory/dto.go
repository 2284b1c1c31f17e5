package inventory

import (
	"strings"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	"github.com/rowalls/uh-internal-project/internal/directory"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type ComputerDTO struct {
	DisplayName   string  `json:"display_name"`
	MACAddress    string  `json:"mac_address"`
	IPAddress     *string `json:"ip_address"`
	Model         string  `json:"model"`
	SerialNumber  *string `json:"serial_number"`
	PropertyID    *string `json:"property_id"`
	Location      *string `json:"location"`
	DN            string  `json:"dn"`
	Description   string  `json:"description"`
	DatePurchased *string `json:"date_purchased"`
	RoomID        *int64  `json:"room_id"`

	datePurchased *time.Time
}

// Validate normalizes the DN and MAC address and parses the purchase date.
func (dto *ComputerDTO) Validate() *errors.AppError {
	dto.DisplayName = strings.TrimSpace(dto.DisplayName)
	dto.MACAddress = strings.TrimSpace(dto.MACAddress)
	dto.Model = strings.TrimSpace(dto.Model)
	dto.Description = strings.TrimSpace(dto.Description)
	dto.IPAddress = optional(dto.IPAddress)
	dto.SerialNumber = optional(dto.SerialNumber)
	dto.PropertyID = optional(dto.PropertyID)
	dto.Location = optional(dto.Location)
	dto.DatePurchased = optional(dto.DatePurchased)

	v := validation.NewValidator()
	v.Field("display_name", dto.DisplayName).Required().MaxLength(60)
	v.Field("mac_address", dto.MACAddress).Required().MACAddress()
	v.Field("ip_address", dto.IPAddress).IPv4()
	v.Field("model", dto.Model).Required().MaxLength(25)
	v.Field("serial_number", dto.SerialNumber).MaxLength(20)
	v.Field("property_id", dto.PropertyID).MaxLength(7)
	v.Field("location", dto.Location).MaxLength(100)
	v.Field("dn", dto.DN).Required().MaxLength(250).Custom(func(interface{}) *errors.AppError {
		if strings.TrimSpace(dto.DN) == "" {
			return nil
		}
		dn, err := directory.NormalizeDN(dto.DN)
		if err != nil {
			return errors.NewValidationFieldError("dn", "Please enter a valid DN.", errors.ErrCodeInvalidDN)
		}
		dto.DN = dn
		return nil
	})
	v.Field("description", dto.Description).MaxLength(100)
	v.Field("date_purchased", dto.DatePurchased).Custom(func(interface{}) *errors.AppError {
		if dto.DatePurchased == nil {
			return nil
		}
		d, err := time.Parse(DateLayout, *dto.DatePurchased)
		if err != nil {
			return errors.NewValidationFieldError("date_purchased", "date_purchased must be formatted as YYYY-MM-DD", errors.ErrCodeValidationFailed)
		}
		dto.datePurchased = &d
		return nil
	})
	if err := v.Validate(); err != nil {
		return err
	}

	dto.MACAddress = NormalizeMAC(dto.MACAddress)
	return nil
}

type PrinterDTO struct {
	DisplayName  string  `json:"display_name"`
	DNSName      string  `json:"dns_name"`
	MACAddress   string  `json:"mac_address"`
	IPAddress    *string `json:"ip_address"`
	Model        string  `json:"model"`
	SerialNumber *string `json:"serial_number"`
	PropertyID   *string `json:"property_id"`
	Location     *string `json:"location"`
	Description  string  `json:"description"`
	RoomID       *int64  `json:"room_id"`
}

func (dto *PrinterDTO) Validate() *errors.AppError {
	dto.DisplayName = strings.TrimSpace(dto.DisplayName)
	dto.DNSName = strings.TrimSpace(dto.DNSName)
	dto.MACAddress = strings.TrimSpace(dto.MACAddress)
	dto.Model = strings.TrimSpace(dto.Model)
	dto.Description = strings.TrimSpace(dto.Description)
	dto.IPAddress = optional(dto.IPAddress)
	dto.SerialNumber = optional(dto.SerialNumber)
	dto.PropertyID = optional(dto.PropertyID)
	dto.Location = optional(dto.Location)

	v := validation.NewValidator()
	v.Field("display_name", dto.DisplayName).Required().MaxLength(60)
	v.Field("dns_name", dto.DNSName).MaxLength(75)
	v.Field("mac_address", dto.MACAddress).Required().MACAddress()
	v.Field("ip_address", dto.IPAddress).IPv4()
	v.Field("model", dto.Model).Required().MaxLength(25)
	v.Field("serial_number", dto.SerialNumber).MaxLength(20)
	v.Field("property_id", dto.PropertyID).MaxLength(7)
	v.Field("location", dto.Location).MaxLength(100)
	v.Field("description", dto.Description).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}

	dto.MACAddress = NormalizeMAC(dto.MACAddress)
	return nil
}

type PrinterRequestDTO struct {
	PrinterID int64  `json:"printer_id"`
	Item      string `json:"item"`
	Quantity  int64  `json:"quantity"`
}

func (dto *PrinterRequestDTO) Validate() *errors.AppError {
	dto.Item = strings.TrimSpace(dto.Item)
	if dto.Quantity == 0 {
		dto.Quantity = 1
	}

	v := validation.NewValidator()
	v.Field("printer_id", dto.PrinterID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	v.Field("item", dto.Item).Required().MaxLength(60)
	v.Field("quantity", dto.Quantity).MinInt(1, errors.ErrCodeValidationFailed).MaxInt(100, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type RequestStatusDTO struct {
	Status string `json:"status"`
}

func (dto *RequestStatusDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", dto.Status).Required().OneOf(RequestOpen, RequestOrdered, RequestDelivered)
	return v.Validate()
}

type (
	ComputerPage = transport.Page[*Computer]
	PrinterPage  = transport.Page[*Printer]
	RequestPage  = transport.Page[*PrinterRequest]
)

// NormalizeMAC upper-cases the address and uses colons as separators.
func NormalizeMAC(mac string) string {
	return strings.ToUpper(strings.ReplaceAll(mac, "-", ":"))
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
