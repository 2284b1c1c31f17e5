package navbar

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
)

type Link struct {
	ID                int64              `gorm:"primaryKey"`
	DisplayName       string             `gorm:"column:display_name;not null;size:50"`
	ParentID          *int64             `gorm:"column:parent_id;index"`
	SequenceIndex     int                `gorm:"column:sequence_index;not null"`
	RouteName         *string            `gorm:"column:route_name;size:100"`
	ExternalURL       *string            `gorm:"column:external_url"`
	Onclick           *string            `gorm:"column:onclick;size:200"`
	Icon              *string            `gorm:"column:icon;size:100"`
	ShowToAll         bool               `gorm:"column:show_to_all;default:false"`
	PermissionClasses []permission.Class `gorm:"many2many:navbar_link_permission_classes;joinForeignKey:navbar_link_id;joinReferences:permission_class_id"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Link) TableName() string {
	return "navbar_links"
}
