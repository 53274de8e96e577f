package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	in := strings.NewReader("first\r\nsecond\nthird")

	line, err := readLine(in)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = readLine(in)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = readLine(in)
	require.NoError(t, err)
	assert.Equal(t, "third", line)

	_, err = readLine(in)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadMultiline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"until dot", "a\nb\n.\nignored\n", "a\nb"},
		{"until eof", "a\n\nb", "a\n\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readMultiline(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptPasswordFromPipe(t *testing.T) {
	called := false
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		called = true
		return nil, nil
	}
	t.Cleanup(func() { readPassword = orig })

	var prompt bytes.Buffer
	pw, err := promptPassword(strings.NewReader("s3cret-pass\nrest"), &prompt, "Password: ")
	require.NoError(t, err)

	assert.Equal(t, "s3cret-pass", pw)
	assert.Equal(t, "Password: \n", prompt.String())
	assert.False(t, called)
}

func TestPromptText(t *testing.T) {
	var prompt bytes.Buffer
	got, err := promptText(strings.NewReader("ada@example.com\n"), &prompt, "Email: ")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", got)
	assert.Equal(t, "Email: ", prompt.String())
}
