package domain

import "fmt"

// Role is a named category of dashboard user. The set is closed.
type Role string

const (
	RoleLandlord         Role = "landlord"
	RolePropertyManager  Role = "property_manager"
	RoleAgent            Role = "agent"
	RoleTenant           Role = "tenant"
	RoleViewOnlyLandlord Role = "view_only_landlord"
	RoleAdmin            Role = "admin"
)

var roles = []Role{
	RoleLandlord,
	RolePropertyManager,
	RoleAgent,
	RoleTenant,
	RoleViewOnlyLandlord,
	RoleAdmin,
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a raw identifier into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}
