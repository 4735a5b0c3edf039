// Package substatus represents the subscription status in the system.
package substatus

import "fmt"

// The set of statuses that can be used.
var (
	Pending   = newStatus("PENDING")
	Active    = newStatus("ACTIVE")
	Trial     = newStatus("TRIAL")
	Cancelled = newStatus("CANCELLED")
	Expired   = newStatus("EXPIRED")
)

// =============================================================================

// Set of known statuses.
var statuses = make(map[string]Status)

// Status represents a subscription status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// Entitled reports whether the status grants access to plan features.
func (s Status) Entitled() bool {
	return s.Equal(Active) || s.Equal(Trial)
}

// =============================================================================

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	status, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid subscription status %q", value)
	}

	return status, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	status, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return status
}
