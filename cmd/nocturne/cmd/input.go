package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptPassword reads a password without echo when in is a terminal, or a
// single line otherwise so scripts can pipe it.
func promptPassword(in io.Reader, w io.Writer, prompt string) (string, error) {
	_, err := fmt.Fprint(w, prompt)
	if err != nil {
		return "", err
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := readLine(in)
	_, _ = fmt.Fprintln(w)
	return line, err
}

// promptText prints prompt and reads one line.
func promptText(in io.Reader, w io.Writer, prompt string) (string, error) {
	_, err := fmt.Fprint(w, prompt)
	if err != nil {
		return "", err
	}
	return readLine(in)
}

// readMultiline reads until EOF or a line containing only ".".
func readMultiline(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// readLine reads byte by byte so nothing past the newline is consumed.
func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) {
			if sb.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
