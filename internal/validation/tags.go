package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxTagLength   = 32
	MaxTagsPerNote = 20
)

var (
	ErrTagTooLong  = invalid("tag is too long (max 32 characters)")
	ErrTooManyTags = invalid("too many tags (max 20)")
)

// NormalizeTags trims each tag, drops empty ones and removes duplicates.
// The first occurrence wins, so insertion order is preserved.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}

	return result
}

// ValidateTags checks already normalized tags.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsPerNote {
		return ErrTooManyTags
	}

	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return ErrTagTooLong
		}
	}

	return nil
}
