package location

import (
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/core/common/validation"
	"github.com/rowalls/uh-internal-project/internal/transport"
)

type CommunityDTO struct {
	Name string `json:"name"`
}

func (dto *CommunityDTO) Validate() *errors.AppError {
	dto.Name = strings.TrimSpace(dto.Name)
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(30)
	return v.Validate()
}

type BuildingDTO struct {
	Name        string `json:"name"`
	CommunityID int64  `json:"community_id"`
}

func (dto *BuildingDTO) Validate() *errors.AppError {
	dto.Name = strings.TrimSpace(dto.Name)
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(30)
	v.Field("community_id", dto.CommunityID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type RoomDTO struct {
	Name       string `json:"name"`
	BuildingID int64  `json:"building_id"`
}

// Validate upper-cases the room name, matching how rooms are signed.
func (dto *RoomDTO) Validate() *errors.AppError {
	dto.Name = strings.ToUpper(strings.TrimSpace(dto.Name))
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(10)
	v.Field("building_id", dto.BuildingID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type CommunitiesResponse struct {
	Communities []*Community `json:"communities"`
}

type BuildingsResponse struct {
	Buildings []*Building `json:"buildings"`
}

type RoomPage = transport.Page[*Room]
