package utils

import (
	"regexp"
	"strings"
)

// Characters invalid in filenames on most filesystems
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

const maxFilenameLength = 100

// SanitizeFilename makes a book title safe to use as a filename.
// It removes invalid characters and literal "..." ellipses, trims
// whitespace and truncates to 100 characters. Sanitizing an already
// sanitized string returns it unchanged.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = strings.ReplaceAll(filename, "...", "")
	filename = strings.TrimSpace(filename)

	// Truncate on rune boundaries so multi-byte titles are never cut
	// mid-character, then re-trim to keep sanitization idempotent.
	if runes := []rune(filename); len(runes) > maxFilenameLength {
		filename = strings.TrimSpace(string(runes[:maxFilenameLength]))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}
