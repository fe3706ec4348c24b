package service

import "fmt"

// Role is the enumerated set of roles a principal can hold. Roles are parsed
// from storage rather than compared as free text so a typo in a stored role
// fails loudly instead of silently denying or granting access.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleMember        Role = "member"
)

// ParseRole converts a stored role string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator, RoleMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }
