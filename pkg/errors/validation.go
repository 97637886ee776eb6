package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateURL validates an endpoint URL taken from configuration.
// It ensures the URL parses, uses http or https, and names a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "malformed URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "URL has no host")
	}
	return nil
}

// ValidateFilename validates the attachment filename sent with a report.
// It must be a non-hidden basename ending in .png.
//
// Validation rules:
//   - Filename cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators
//   - No leading dot
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "filename cannot be empty")
	}

	const maxFilenameLength = 128
	if len(filename) > maxFilenameLength {
		return New(ErrCodeInvalidConfig, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidConfig, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidConfig, "filename cannot be a hidden file")
	}

	if !strings.EqualFold(filepath.Ext(filename), ".png") {
		return New(ErrCodeInvalidConfig, "filename must end in .png: %q", filename)
	}
	return nil
}
