package roster

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	"github.com/rowalls/uh-internal-project/internal/core/datamodel/location"
)

// CSDMapping assigns a coordinator of student development to the buildings
// of their domain.
type CSDMapping struct {
	ID               int64               `gorm:"primaryKey"`
	Name             string              `gorm:"column:name;not null;size:50"`
	Email            string              `gorm:"column:email;not null;size:254;index"`
	Domain           string              `gorm:"column:domain;uniqueIndex;not null;size:35"`
	DirectoryGroupID int64               `gorm:"column:directory_group_id;not null"`
	Group            *directory.Group    `gorm:"foreignKey:DirectoryGroupID"`
	Buildings        []location.Building `gorm:"many2many:csd_mapping_buildings;joinForeignKey:csd_mapping_id;joinReferences:building_id"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (CSDMapping) TableName() string {
	return "csd_mappings"
}
