// Package plans holds the package tier catalog: the closed set of subscription
// tiers and, for each tier, the dashboard features and content payload a user
// on that tier is entitled to.
//
// The catalog is data, not code. Callers look a tier up and return what they
// find; nothing outside this package branches on a tier name. Adding a tier is
// an edit to catalog.yaml (or to the file named by PLANS_CATALOG_FILE).
package plans

import (
	"errors"
	"strings"
)

// Tier is the name of a subscription package, e.g. "free".
type Tier string

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// Normalize trims and lower-cases user input so "  Pro " matches "pro".
func Normalize(s string) Tier {
	return Tier(strings.ToLower(strings.TrimSpace(s)))
}

// ErrInvalidTier is returned when a tier name is not part of the catalog.
var ErrInvalidTier = errors.New("invalid plan")
