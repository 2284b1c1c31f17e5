package permission

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
)

type CreateClassDTO struct {
	Name string `json:"name"`
}

func (d *CreateClassDTO) Validate() *errors.AppError {
	d.Name = strings.TrimSpace(d.Name)
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(50)
	return v.Validate()
}

type GrantGroupDTO struct {
	GroupID int64 `json:"group_id"`
}

func (d *GrantGroupDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("group_id", d.GroupID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type AccessResponse struct {
	Class     string `json:"class"`
	HasAccess bool   `json:"has_access"`
}

type ClassesResponse struct {
	Classes []*Class `json:"classes"`
}
