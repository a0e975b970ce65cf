package user

import (
	"context"
	"database/sql"
	"errors"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, phone_number, roles, group_id, parent_id, created_at`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM ortus.users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByGroupID(ctx context.Context, groupID int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM ortus.users
		WHERE group_id = $1
		ORDER BY full_name
	`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, groupID); err != nil {
		return nil, err
	}
	return users, nil
}
