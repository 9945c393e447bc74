package entity

import (
	"time"
)

// ReservedUsername cannot be registered because it collides with the /users/me route.
const ReservedUsername = "me"

// User represents a registered user in the system
type User struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Username  string     `bson:"username" json:"username"`
	Email     string     `bson:"email" json:"email"`
	Role      UserRole   `bson:"role" json:"role"`
	Bio       string     `bson:"bio" json:"bio"`
	FirstName string     `bson:"first_name" json:"first_name"`
	LastName  string     `bson:"last_name" json:"last_name"`
	IsActive  bool       `bson:"is_active" json:"is_active"`
	LastLogin *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

func DefaultRole() UserRole {
	return UserRoleUser
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin is the only privileged check; there is no separate staff flag.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

func (u *User) IsModerator() bool {
	return u != nil && u.Role == UserRoleModerator
}

func (u *User) IsUser() bool {
	return u != nil && u.Role == UserRoleUser
}

// CanModerate reports whether u may edit or delete content written by others.
func (u *User) CanModerate() bool {
	return u.IsAdmin() || u.IsModerator()
}

// CanModify reports whether u may change an object authored by authorID.
func (u *User) CanModify(authorID string) bool {
	if u == nil {
		return false
	}
	return u.ID == authorID || u.CanModerate()
}
