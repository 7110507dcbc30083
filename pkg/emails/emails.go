// Package emails extracts email addresses from free-text input such as an
// invitee list typed into a single field.
//
// The shape check is deliberately permissive and is not RFC 5322 complete: the
// local part may hold word characters, dots and hyphens, and the domain must
// end in a 2-4 letter label. Quoted local parts, plus-addressing and long
// top-level domains are rejected.
package emails

import "regexp"

var (
	separatorPattern = regexp.MustCompile(`[\s\v\p{Z},]+`)
	addressPattern   = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[A-Za-z]{2,4}$`)
)

// Extract splits text on runs of whitespace (including vertical tabs and
// Unicode spaces such as NBSP) and commas and returns the tokens
// that look like email addresses. Input order is preserved and duplicates are
// kept. The result is never nil.
func Extract(text string) []string {
	out := []string{}
	for _, token := range separatorPattern.Split(text, -1) {
		if token == "" || !addressPattern.MatchString(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

// Valid reports whether token looks like a single email address.
func Valid(token string) bool {
	return addressPattern.MatchString(token)
}

// HasAny reports whether text contains at least one valid address.
func HasAny(text string) bool {
	for _, token := range separatorPattern.Split(text, -1) {
		if token != "" && addressPattern.MatchString(token) {
			return true
		}
	}
	return false
}
