package roster

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
)

// MaxBuildings bounds a single roster request.
const MaxBuildings = 50

type MappingDTO struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Domain           string  `json:"domain"`
	DirectoryGroupID int64   `json:"directory_group_id"`
	BuildingIDs      []int64 `json:"building_ids"`
}

func (dto *MappingDTO) Validate() *errors.AppError {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Domain = strings.TrimSpace(dto.Domain)
	dto.BuildingIDs = uniqueIDs(dto.BuildingIDs)

	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(50)
	v.Field("email", dto.Email).Required().MaxLength(254).Custom(func(value interface{}) *errors.AppError {
		if !strings.Contains(value.(string), "@") {
			return errors.NewValidationFieldError("email", "email must be an address", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("domain", dto.Domain).Required().MaxLength(35)
	v.Field("directory_group_id", dto.DirectoryGroupID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type GenerateDTO struct {
	BuildingIDs []int64 `json:"building_ids"`
	Format      string  `json:"format"`
}

func (dto *GenerateDTO) Validate() *errors.AppError {
	dto.BuildingIDs = uniqueIDs(dto.BuildingIDs)
	dto.Format = strings.ToLower(strings.TrimSpace(dto.Format))
	if dto.Format == "" {
		dto.Format = FormatJSON
	}

	v := validation.NewValidator()
	v.Field("building_ids", dto.BuildingIDs).Custom(func(value interface{}) *errors.AppError {
		switch ids := value.([]int64); {
		case len(ids) == 0:
			return errors.NewValidationFieldError("building_ids", "select at least one building", errors.ErrCodeValidationFailed)
		case len(ids) > MaxBuildings:
			return errors.NewValidationFieldError("building_ids", "too many buildings selected", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("format", dto.Format).OneOf(FormatJSON, FormatCSV)
	return v.Validate()
}

type MappingsResponse struct {
	Mappings []*Mapping `json:"mappings"`
}

// DefaultsResponse carries the buildings preselected for the current user.
type DefaultsResponse struct {
	BuildingIDs []int64 `json:"building_ids"`
}

// uniqueIDs drops duplicates and non-positive ids, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
