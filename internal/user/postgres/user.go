package postgres

import (
	"context"
	"errors"

	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	userDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
	"github.com/rowalls/uh-internal-project/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	return r.first(ctx, "id = ?", id)
}

// Save inserts or updates the user row. Group membership and flair are left
// untouched; see ReplaceGroups.
func (r *UserRepository) Save(ctx context.Context, u *userDatamodel.User) error {
	db := r.db.WithContext(ctx).Omit("Groups", "Flair")
	if u.ID == 0 {
		return db.Create(u).Error
	}
	return db.Save(u).Error
}

func (r *UserRepository) ReplaceGroups(ctx context.Context, userID int64, groupIDs []int64) error {
	groups := []directoryDatamodel.Group{}
	if len(groupIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Model(&userDatamodel.User{ID: userID}).Association("Groups").Replace(groups)
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Preload("Groups").Preload("Flair").Where(query, arg).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
