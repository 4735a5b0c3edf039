// Package feature represents the plan-gated feature keys in the system.
package feature

import "fmt"

// The set of features that can be gated by a subscription plan.
var (
	CustomDomain = newFeature("custom_domain")
	WhiteLabel   = newFeature("white_label")
	APIAccess    = newFeature("api_access")
)

// =============================================================================

// Set of known features.
var features = make(map[string]Feature)

// Feature represents a gated feature in the system.
type Feature struct {
	value string
}

func newFeature(feature string) Feature {
	f := Feature{feature}
	features[feature] = f
	return f
}

// String returns the key of the feature.
func (f Feature) String() string {
	return f.value
}

// Equal provides support for the go-cmp package and testing.
func (f Feature) Equal(f2 Feature) bool {
	return f.value == f2.value
}

// MarshalText provides support for logging and any marshal needs.
func (f Feature) MarshalText() ([]byte, error) {
	return []byte(f.value), nil
}

// =============================================================================

// Parse parses the string value and returns a feature if one exists.
func Parse(value string) (Feature, error) {
	feature, exists := features[value]
	if !exists {
		return Feature{}, fmt.Errorf("invalid feature %q", value)
	}

	return feature, nil
}

// MustParse parses the string value and returns a feature if one exists. If
// an error occurs the function panics.
func MustParse(value string) Feature {
	feature, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return feature
}
