package util

import "strings"

// Slug lowercases s and collapses every run of non-alphanumeric
// characters to a single underscore. Used for agent types from config
// overlays, which end up in session IDs and on-disk filenames.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return "agent"
	}
	return out
}
