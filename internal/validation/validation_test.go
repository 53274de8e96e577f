package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"duplicates suppressed", []string{"a", "a", "b"}, []string{"a", "b"}},
		{"order preserved", []string{"z", "a", "z", "m"}, []string{"z", "a", "m"}},
		{"whitespace trimmed", []string{" rem ", "rem", ""}, []string{"rem"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, ValidateTags([]string{"a", "b"}))
	assert.ErrorIs(t, ValidateTags([]string{strings.Repeat("x", 33)}), ErrTagTooLong)

	many := make([]string, 21)
	for i := range many {
		many[i] = strings.Repeat("t", i+1)
	}
	assert.ErrorIs(t, ValidateTags(many), ErrTooManyTags)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct-horse"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("k", 73)), ErrPasswordTooLong)
	assert.ErrorIs(t, ValidatePassword("mypassword1"), ErrPasswordTooCommon)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("sam@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidateNoteTitle(t *testing.T) {
	assert.NoError(t, ValidateNoteTitle("Dream journal"))
	assert.ErrorIs(t, ValidateNoteTitle("   "), ErrTitleRequired)
	assert.ErrorIs(t, ValidateNoteTitle(strings.Repeat("t", 201)), ErrTitleTooLong)
}

func TestValidateQualityRating(t *testing.T) {
	assert.NoError(t, ValidateQualityRating(1))
	assert.NoError(t, ValidateQualityRating(5))
	assert.ErrorIs(t, ValidateQualityRating(0), ErrInvalidQuality)
	assert.ErrorIs(t, ValidateQualityRating(6), ErrInvalidQuality)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("sam.vimes"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("sam vimes"))
}
