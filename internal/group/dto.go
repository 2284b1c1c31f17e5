package group

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	"github.com/rowalls/uh-internal-project/internal/directory"
)

type CreateGroupDTO struct {
	DistinguishedName string `json:"distinguished_name"`
	DisplayName       string `json:"display_name"`
}

// Validate normalizes the DN and defaults the display name to its CN.
func (d *CreateGroupDTO) Validate() *errors.AppError {
	d.DisplayName = strings.TrimSpace(d.DisplayName)

	v := validation.NewValidator()
	v.Field("distinguished_name", strings.TrimSpace(d.DistinguishedName)).Required().MaxLength(250)
	if err := v.Validate(); err != nil {
		return err
	}

	dn, err := directory.NormalizeDN(d.DistinguishedName)
	if err != nil {
		return validation.FieldError("distinguished_name", "invalid distinguished name", errors.ErrCodeInvalidDN)
	}
	d.DistinguishedName = dn

	if d.DisplayName == "" {
		d.DisplayName = directory.CommonName(dn)
	}

	v = validation.NewValidator()
	v.Field("display_name", d.DisplayName).Required().MaxLength(50)
	return v.Validate()
}

type GroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type MembersResponse struct {
	Group   *Group   `json:"group"`
	Members []Member `json:"members"`
}
