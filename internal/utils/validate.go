package utils

import "strings"

// NormalizeEmail lowercases and trims an address. Every lookup and every
// stored email goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
