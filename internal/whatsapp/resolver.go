package whatsapp

import (
	"strings"

	"github.com/samber/lo"
)

// ResolveGroup maps a user-supplied name to exactly one group.
//
// Matching is case-insensitive substring containment in either
// direction, so "family" finds "Family Group 2024" and a pasted full
// name still finds its group. When several groups match, the first in
// the adapter's order wins — partial names are meant to be
// frictionless, and group names that genuinely overlap are rare enough
// that failing the call would hurt more than it protects.
//
// Zero matches fail with a GroupNotFoundError carrying every available
// display name.
func ResolveGroup(name string, groups []Group) (Group, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, g := range groups {
		have := strings.ToLower(g.DisplayName)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return g, nil
		}
	}
	return Group{}, &GroupNotFoundError{Name: name, Available: DisplayNames(groups)}
}

// DisplayNames returns the display names of groups in adapter order.
func DisplayNames(groups []Group) []string {
	return lo.Map(groups, func(g Group, _ int) string { return g.DisplayName })
}
