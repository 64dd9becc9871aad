package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateSource checks diagram source before it is encoded.
// Whitespace-only text counts as empty.
func ValidateSource(code string) error {
	if strings.TrimSpace(code) == "" {
		return New(ErrCodeInvalidInput, "No code provided")
	}
	if !utf8.ValidString(code) {
		return New(ErrCodeInvalidInput, "code is not valid UTF-8")
	}
	return nil
}

// draftIDRegex matches storage keys such as "plantuml-code" or a UUID.
var draftIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateDraftID validates a draft identifier for safety.
// Draft IDs become file names and database keys, so path components,
// control characters and overly long IDs are rejected.
func ValidateDraftID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDraftID, "draft id cannot be empty")
	}

	const maxIDLength = 128
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDraftID, "draft id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDraftID, "draft id contains invalid control characters")
		}
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidDraftID, "draft id cannot contain path traversal sequences (..)")
	}

	if !draftIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDraftID, "invalid draft id: %q", id)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// validFormats are the image formats a PlantUML server can return.
var validFormats = map[string]bool{
	"png": true,
	"svg": true,
	"txt": true,
}

// ValidateFormat checks that format is an output format of the rendering service.
func ValidateFormat(format string) error {
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, txt)", format)
	}
	return nil
}
