package location

type Community struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null;size:30"`
}

func (Community) TableName() string {
	return "communities"
}

type Building struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;not null;size:30"`
	CommunityID int64      `gorm:"column:community_id;not null;index"`
	Community   *Community `gorm:"foreignKey:CommunityID"`
}

func (Building) TableName() string {
	return "buildings"
}

type Room struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null;size:10"`
	BuildingID int64     `gorm:"column:building_id;not null;index"`
	Building   *Building `gorm:"foreignKey:BuildingID"`
}

func (Room) TableName() string {
	return "rooms"
}
