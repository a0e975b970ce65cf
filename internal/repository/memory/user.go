package memory

import (
	"context"
	"ortus-club/internal/models"
	"sort"
)

type userRepository struct {
	db *DB
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if u, ok := r.db.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepository) GetByGroupID(_ context.Context, groupID int64) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var users []models.User
	for _, u := range r.db.users {
		if u.GroupID != nil && *u.GroupID == groupID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	return users, nil
}

type groupRepository struct {
	db *DB
}

func (r *groupRepository) GetByID(_ context.Context, id int64) (*models.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if g, ok := r.db.groups[id]; ok {
		return &g, nil
	}
	return nil, nil
}
