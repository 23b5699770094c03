package domain

import "time"

// User represents a print shop staff member.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	Token     string
	IsActive  bool
	CreatedAt time.Time
}
