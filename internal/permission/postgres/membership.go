package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const userInClassQuery = `
SELECT EXISTS (
	SELECT 1
	FROM users u
	JOIN user_directory_groups ug ON ug.user_id = u.id
	JOIN permission_class_groups pg ON pg.directory_group_id = ug.directory_group_id
	JOIN permission_classes pc ON pc.id = pg.permission_class_id
	WHERE u.username = ? AND pc.name = ? AND u.is_active = ?
)`

// MembershipStore resolves class membership with a single EXISTS query.
type MembershipStore struct {
	db *sqlx.DB
}

func NewMembershipStore(db *sqlx.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

func (s *MembershipStore) UserInClass(ctx context.Context, username, class string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, s.db.Rebind(userInClassQuery), username, class, true)
	return exists, err
}
