package dailyduty

import (
	"time"

	"github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
)

type Duty struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;uniqueIndex;not null;size:50"`
	LastChecked time.Time  `gorm:"column:last_checked;not null"`
	LastUserID  *int64     `gorm:"column:last_user_id"`
	LastUser    *user.User `gorm:"foreignKey:LastUserID"`
}

func (Duty) TableName() string {
	return "daily_duties"
}
