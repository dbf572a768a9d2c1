package cli

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

// errAborted is returned by prompts when the user types ":q".
var errAborted = errors.New("aborted")

const abortInput = ":q"

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// terminal without echo. The caller should clear the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "パスワード: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// promptValue shows the current value in brackets. Empty input keeps it.
func promptValue(reader *bufio.Reader, w io.Writer, label, current string) (string, bool, error) {
	prompt := label
	if current != "" {
		prompt += " [" + current + "]"
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", false, err
	}
	if s == abortInput {
		return "", false, errAborted
	}
	return s, s != "", nil
}

// Confirm asks a yes/no question. Only "y" or "yes" confirms.
func Confirm(reader *bufio.Reader, w io.Writer, question string) (bool, error) {
	s, err := GetSimpleText(reader, question+" (y/N)", w)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}
