// Package subdomain represents the subdomain slug type in the system.
package subdomain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBase is used when a business name produces an empty slug.
const DefaultBase = "empresa"

const maxBaseLen = 20

var validSubdomain = regexp.MustCompile(`^[a-z0-9]{1,20}[0-9]*$`)

// Subdomain represents a URL-safe tenant slug in the system.
type Subdomain struct {
	value string
}

// String returns the value of the subdomain.
func (s Subdomain) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Subdomain) Equal(s2 Subdomain) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Subdomain) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// WithSuffix returns a new candidate with the specified collision counter
// appended to the base value.
func (s Subdomain) WithSuffix(n int) Subdomain {
	return Subdomain{fmt.Sprintf("%s%d", s.value, n)}
}

// =============================================================================

// Derive produces the base slug for a business name: lower-cased, stripped of
// everything outside [a-z0-9] and truncated to 20 characters. An empty result
// falls back to the default base token.
func Derive(businessName string) Subdomain {
	var b strings.Builder

	for _, r := range strings.ToLower(businessName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}

		if b.Len() == maxBaseLen {
			break
		}
	}

	if b.Len() == 0 {
		return Subdomain{DefaultBase}
	}

	return Subdomain{b.String()}
}

// Parse parses the string value and returns a subdomain if the value complies
// with the rules for a subdomain.
func Parse(value string) (Subdomain, error) {
	if !validSubdomain.MatchString(value) {
		return Subdomain{}, fmt.Errorf("invalid subdomain %q", value)
	}

	return Subdomain{value}, nil
}

// MustParse parses the string value and returns a subdomain if the value
// complies with the rules for a subdomain. If an error occurs the function
// panics.
func MustParse(value string) Subdomain {
	sub, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return sub
}
