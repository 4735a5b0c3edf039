// Package role represents the tenant role type in the system.
package role

import "fmt"

// The set of roles that can be used. The declaration order follows the
// privilege ranking: owner outranks admin, admin outranks manager, manager
// outranks employee.
var (
	Owner    = newRole("OWNER", 4)
	Admin    = newRole("ADMIN", 3)
	Manager  = newRole("MANAGER", 2)
	Employee = newRole("EMPLOYEE", 1)
)

// =============================================================================

// Set of known roles.
var roles = make(map[string]Role)

// Role represents a role in the system.
type Role struct {
	value string
	rank  int
}

func newRole(role string, rank int) Role {
	r := Role{role, rank}
	roles[role] = r
	return r
}

// String returns the name of the role.
func (r Role) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// Outranks reports whether r is strictly higher than r2 in the privilege
// ordering.
func (r Role) Outranks(r2 Role) bool {
	return r.rank > r2.rank
}

// AtLeast reports whether r is equal to or higher than r2 in the privilege
// ordering.
func (r Role) AtLeast(r2 Role) bool {
	return r.rank >= r2.rank
}

// CanGrant reports whether an actor holding r may assign the specified role
// to another member. A member may only grant roles strictly below their own,
// except the owner who may grant any non-owner role.
func (r Role) CanGrant(target Role) bool {
	if target.Equal(Owner) {
		return false
	}

	if r.Equal(Owner) {
		return true
	}

	return r.Outranks(target)
}

// =============================================================================

// Parse parses the string value and returns a role if one exists.
func Parse(value string) (Role, error) {
	role, exists := roles[value]
	if !exists {
		return Role{}, fmt.Errorf("invalid role %q", value)
	}

	return role, nil
}

// MustParse parses the string value and returns a role if one exists. If
// an error occurs the function panics.
func MustParse(value string) Role {
	role, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return role
}
