package group

import (
	"context"
	"database/sql"
	"errors"
	"ortus-club/internal/models"
	"ortus-club/internal/repository"

	"github.com/jmoiron/sqlx"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	group := &models.Group{}
	err := r.db.GetContext(ctx, group, `SELECT id, name, trainer_id, created_at FROM ortus.groups WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}
