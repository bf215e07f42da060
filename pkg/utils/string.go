package utils

// Truncate is a simple string truncate. Strings longer than maxLen are cut
// at maxLen bytes with an ellipsis appended.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
