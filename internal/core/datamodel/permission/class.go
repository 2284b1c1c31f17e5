package permission

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
)

type Class struct {
	ID        int64             `gorm:"primaryKey"`
	Name      string            `gorm:"column:name;uniqueIndex;not null;size:50"`
	Groups    []directory.Group `gorm:"many2many:permission_class_groups;joinForeignKey:permission_class_id;joinReferences:directory_group_id"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Class) TableName() string {
	return "permission_classes"
}
