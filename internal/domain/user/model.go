package user

import "time"

// RoleAdmin is the only role with elevated privileges; regular users carry an
// empty role.
const RoleAdmin = "admin"

// User represents a registered account. Email is the unique key: registering
// the same email twice never creates a second document.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
