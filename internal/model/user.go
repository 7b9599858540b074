// Package model defines domain entities for the application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level assigned to a user.
// The set is closed: there is no role hierarchy.
type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
)

// IsValid checks if the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleDefault || r == RoleAdmin
}

// User represents a registered principal.
// Email is the sole external identity key; matching is exact and case-sensitive.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the authenticated principal attached to a request context
// after token verification. It carries no secret material.
type Identity struct {
	Email string `json:"email"`
}
