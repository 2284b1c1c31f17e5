package postgres

import (
	"context"
	"errors"
	"time"

	dutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DutyRepository struct {
	db *gorm.DB
}

func NewDutyRepository(db *gorm.DB) dailyduty.RepositoryAPI {
	return &DutyRepository{db: db}
}

func (r *DutyRepository) GetByName(ctx context.Context, name string) (*dutyDatamodel.Duty, error) {
	var duty dutyDatamodel.Duty
	err := r.db.WithContext(ctx).Preload("LastUser").Where("name = ?", name).First(&duty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &duty, nil
}

func (r *DutyRepository) Acknowledge(ctx context.Context, name string, userID int64, at time.Time) error {
	duty := dutyDatamodel.Duty{Name: name, LastChecked: at, LastUserID: &userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_checked", "last_user_id"}),
	}).Create(&duty).Error
}
