package user

// Flair is a custom title a technician carries next to their group names.
type Flair struct {
	ID     int64  `gorm:"primaryKey"`
	UserID int64  `gorm:"column:user_id;uniqueIndex;not null"`
	Flair  string `gorm:"column:flair;uniqueIndex;not null;size:30"`
}

func (Flair) TableName() string {
	return "tech_flairs"
}
