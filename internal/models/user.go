package models

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDirector  Role = "director"
	RoleManager   Role = "manager"
	RoleTrainer   Role = "trainer"
	RoleTechStaff Role = "tech_staff"
	RoleStudent   Role = "student"
	RoleParent    Role = "parent"
	RoleClient    Role = "client"
)

type User struct {
	ID          int64          `db:"id" json:"id"`
	FullName    string         `db:"full_name" json:"full_name"`
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	GroupID     *int64         `db:"group_id" json:"group_id,omitempty"`
	ParentID    *int64         `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Actor - пользователь, от имени которого выполняется запрос
type Actor struct {
	UserID int64
	Roles  []Role
}

func (a Actor) Has(roles ...Role) bool {
	for _, have := range a.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
