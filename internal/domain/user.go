package domain

import "time"

// RoleName enumerates the two known roles. Unknown values are rejected at the
// token boundary, never defaulted.
type RoleName string

const (
	RoleUser  RoleName = "USER"
	RoleAdmin RoleName = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r RoleName) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Role is a persisted role record. USER must exist for registration to work.
type Role struct {
	ID        int64
	Name      RoleName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the domain model for account holders.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
	Role         RoleName
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
