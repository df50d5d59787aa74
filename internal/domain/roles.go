package domain

// Roles carried in JWT claims. The user store itself lives in the
// external auth service; the booking core only checks the role string.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)
