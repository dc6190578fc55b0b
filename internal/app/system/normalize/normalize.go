// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-supplied identity
// fields. Every store write goes through these so lookups never miss on
// stray whitespace or case differences.
package normalize

import "strings"

// Username lowercases and trims a username.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
