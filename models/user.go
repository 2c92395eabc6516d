package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleEditor    Role = "editor"
)

// Level maps a role onto the permission hierarchy. Unknown roles are 0.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleEditor:
		return 10
	default:
		return 0
	}
}

// AtLeast reports whether r grants every permission of min.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Level() >= min.Level()
}

func (r Role) Valid() bool {
	return r.Level() > 0
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

type User struct {
	ID             string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	FullName       string    `bson:"full_name" json:"full_name"`
	Role           Role      `bson:"role" json:"role"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
	HashedPassword string    `bson:"hashed_password" json:"-"` // never expose
}

// UserPatch holds the admin-editable account fields. Nil means unchanged.
type UserPatch struct {
	FullName *string
	Role     *Role
	IsActive *bool
}

func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.Role == nil && p.IsActive == nil
}

// Apply copies the set fields onto u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, at time.Time) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	u.UpdatedAt = at
}
