package validation

import (
	"strings"
	"unicode/utf8"
)

var (
	ErrTitleRequired  = invalid("title is required")
	ErrTitleTooLong   = invalid("title is too long (max 200 characters)")
	ErrInvalidQuality = invalid("quality rating must be between 1 and 5")
)

// ValidateNoteTitle validates a note title
func ValidateNoteTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return ErrTitleRequired
	}

	if utf8.RuneCountInString(trimmed) > 200 {
		return ErrTitleTooLong
	}

	return nil
}

// ValidateQualityRating accepts ratings from 1 to 5.
func ValidateQualityRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidQuality
	}
	return nil
}
