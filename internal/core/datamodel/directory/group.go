package directory

import "time"

// Group mirrors a directory group locally so it can be bound to permission classes.
type Group struct {
	ID                int64     `gorm:"primaryKey"`
	DistinguishedName string    `gorm:"column:distinguished_name;uniqueIndex;not null;size:250"`
	DisplayName       string    `gorm:"column:display_name;not null;size:50"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Group) TableName() string {
	return "directory_groups"
}
