package navbar

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
)

// LinkDTO is the full writable shape of a link, used for create and update.
type LinkDTO struct {
	DisplayName        string  `json:"display_name"`
	ParentID           *int64  `json:"parent_id"`
	SequenceIndex      int     `json:"sequence_index"`
	RouteName          *string `json:"route_name"`
	ExternalURL        *string `json:"external_url"`
	Onclick            *string `json:"onclick"`
	Icon               *string `json:"icon"`
	ShowToAll          bool    `json:"show_to_all"`
	PermissionClassIDs []int64 `json:"permission_class_ids"`
}

// Validate checks the shape of the link. Route resolution and parent depth
// need the store and are checked by the service.
func (d *LinkDTO) Validate() *errors.AppError {
	d.DisplayName = strings.TrimSpace(d.DisplayName)
	d.RouteName = trimmed(d.RouteName)
	d.ExternalURL = trimmed(d.ExternalURL)
	d.Onclick = trimmed(d.Onclick)
	d.Icon = trimmed(d.Icon)

	v := validation.NewValidator()
	v.Field("display_name", d.DisplayName).Required().MaxLength(50)
	v.Field("sequence_index", int64(d.SequenceIndex)).MinInt(0, errors.ErrCodeValidationFailed).MaxInt(32767, errors.ErrCodeValidationFailed)
	v.Field("route_name", d.RouteName).MaxLength(100)
	v.Field("onclick", d.Onclick).MaxLength(200)
	v.Field("icon", d.Icon).MaxLength(100)
	if d.ExternalURL != nil {
		v.Field("external_url", d.ExternalURL).AbsoluteURL()
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if d.RouteName != nil && d.ExternalURL != nil {
		return validation.FieldError("external_url", "a link has either a route name or an external url, not both", errors.ErrCodeInvalidTarget)
	}
	if d.ParentID != nil && d.RouteName == nil && d.ExternalURL == nil && d.Onclick == nil {
		return validation.FieldError("route_name", "a nested link needs a route name, an external url or an onclick handler", errors.ErrCodeInvalidTarget)
	}
	return nil
}

// trimmed turns blank optional strings into nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

type LinksResponse struct {
	Links []*Link `json:"links"`
}
