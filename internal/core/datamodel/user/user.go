package user

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
)

type User struct {
	ID                  int64             `gorm:"primaryKey"`
	Username            string            `gorm:"column:username;uniqueIndex;not null;size:30"`
	FirstName           string            `gorm:"column:first_name;size:30"`
	LastName            string            `gorm:"column:last_name;size:30"`
	Email               string            `gorm:"column:email;size:254"`
	IsActive            bool              `gorm:"column:is_active;default:true"`
	OnityComplete       bool              `gorm:"column:onity_complete;default:false"`
	SRSComplete         bool              `gorm:"column:srs_complete;default:false"`
	PayrollComplete     bool              `gorm:"column:payroll_complete;default:false"`
	OrientationComplete bool              `gorm:"column:orientation_complete;default:false"`
	LastLogin           *time.Time        `gorm:"column:last_login"`
	Groups              []directory.Group `gorm:"many2many:user_directory_groups;joinForeignKey:user_id;joinReferences:directory_group_id"`
	Flair               *Flair            `gorm:"foreignKey:UserID"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
