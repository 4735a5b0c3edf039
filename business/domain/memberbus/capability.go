package memberbus

import (
	"fmt"

	"github.com/negocio360/platform/business/types/role"
)

// The set of capabilities a membership can carry an explicit override for.
var (
	CapManageMembers  = newCapability("manage_members")
	CapManageSettings = newCapability("manage_settings")
	CapManageBilling  = newCapability("manage_billing")
	CapViewReports    = newCapability("view_reports")
)

var capabilities = make(map[string]Capability)

// Capability identifies one fine-grained permission in the system.
type Capability struct {
	value string
}

func newCapability(capability string) Capability {
	c := Capability{capability}
	capabilities[capability] = c
	return c
}

// String returns the name of the capability.
func (c Capability) String() string {
	return c.value
}

// Equal provides support for the go-cmp package and testing.
func (c Capability) Equal(c2 Capability) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// ParseCapability parses the string value and returns a capability if one
// exists.
func ParseCapability(value string) (Capability, error) {
	capability, exists := capabilities[value]
	if !exists {
		return Capability{}, fmt.Errorf("invalid capability %q", value)
	}

	return capability, nil
}

// =============================================================================

// roleDefaults declares the minimum role that holds each capability when no
// override is present on the membership.
var roleDefaults = map[Capability]role.Role{
	CapManageMembers:  role.Admin,
	CapManageSettings: role.Admin,
	CapManageBilling:  role.Owner,
	CapViewReports:    role.Manager,
}

// CapabilitySet is an explicit per-membership override of the role defaults.
// A capability absent from the set falls back to the role-based default.
type CapabilitySet map[Capability]bool

// Allowed reports whether the membership holds the capability, considering
// the explicit override first and the role default otherwise.
func (m Member) Allowed(c Capability) bool {
	if granted, overridden := m.Capabilities[c]; overridden {
		return granted
	}

	min, exists := roleDefaults[c]
	if !exists {
		return false
	}

	return m.Role.AtLeast(min)
}

// Revoked reports whether the membership carries an explicit denial of the
// capability. A capability absent from the set is not a revocation.
func (m Member) Revoked(c Capability) bool {
	granted, overridden := m.Capabilities[c]
	return overridden && !granted
}
