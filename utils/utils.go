package utils

import "strings"

// ContainsIgnoreCase reports whether substr occurs in str, case-insensitive.
func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
