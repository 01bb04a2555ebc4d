package models

// Roles a user can hold. Staff may manage other users.
const (
	RoleMember = "member"
	RoleStaff  = "staff"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleMember || role == RoleStaff
}
