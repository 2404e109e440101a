// Package prompt implements the interactive operator: yes/no confirmations,
// password entry and the collision menus used by the merge resolver.
//
// Every menu re-prompts until a well-formed token is entered. End of input
// and read errors surface as ErrInputFailed so a closed stdin never loops.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/illarion/passkeep/internal/crypto"
	"github.com/illarion/passkeep/internal/merge"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/term"
)

const (
	chooseWayMessage = "You can accept OLD values, NEW values, do detailed MERGE or ABORT command (O/N/M/A):"
	mergeHelpMessage = "Choose between OLD value and NEW for each collision:"
)

var (
	ErrInputFailed      = errors.New("could not read the input")
	ErrPasswordMismatch = errors.New("password mismatch")
)

// Terminal talks to the operator over a line-oriented reader and writer
type Terminal struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() ([]byte, error)
	mergeHelp    bool
}

// New creates a Terminal over arbitrary streams.
// readPassword reads one secret line without echo.
func New(in io.Reader, out io.Writer, readPassword func() ([]byte, error)) *Terminal {
	return &Terminal{
		in:           bufio.NewReader(in),
		out:          out,
		readPassword: readPassword,
	}
}

// NewTerminal creates a Terminal on stdin/stdout.
// Passwords are read without echo when stdin is a terminal.
func NewTerminal() *Terminal {
	t := New(os.Stdin, os.Stdout, nil)
	t.readPassword = func() ([]byte, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			line, err := t.readLine()
			return []byte(line), err
		}
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(t.out) // New line after password
		return password, err
	}
	return t
}

// readLine reads one line, stripping the line terminator
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", fmt.Errorf("%w: %v", ErrInputFailed, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readToken reads a trimmed, lower-cased menu answer
func (t *Terminal) readToken() (string, error) {
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Confirm asks a yes/no question until the answer is recognised
func (t *Terminal) Confirm(message string) (bool, error) {
	for {
		fmt.Fprintf(t.out, "%s (Y/N): ", message)
		answer, err := t.readToken()
		if err != nil {
			return false, err
		}
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// AskPassword reads a password, and a confirmation of it when confirm is set
func (t *Terminal) AskPassword(confirm bool) (string, error) {
	fmt.Fprint(t.out, "Password: ")
	password, err := t.readPassword()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputFailed, err)
	}
	defer crypto.ClearBytes(password)

	if !confirm {
		return string(password), nil
	}

	fmt.Fprint(t.out, "Confirm: ")
	again, err := t.readPassword()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputFailed, err)
	}
	defer crypto.ClearBytes(again)

	if !crypto.ConstantTimeCompare(password, again) {
		return "", ErrPasswordMismatch
	}
	return string(password), nil
}

// ChooseWay lists the colliding keys and asks how to resolve them
func (t *Terminal) ChooseWay(collisions []string) (merge.Way, error) {
	fmt.Fprintln(t.out, color.YellowString("Collisions found for the following keys:"))
	for _, key := range collisions {
		fmt.Fprintf(t.out, "  %s\n", key)
	}

	for {
		fmt.Fprintf(t.out, "%s ", chooseWayMessage)
		answer, err := t.readToken()
		if err != nil {
			return merge.WayAbort, err
		}
		switch answer {
		case "o":
			return merge.WayOld, nil
		case "n":
			return merge.WayNew, nil
		case "m":
			return merge.WayMerge, nil
		case "a":
			return merge.WayAbort, nil
		}
	}
}

// ChooseValue shows the resident and incoming values of one key and asks
// which one to keep
func (t *Terminal) ChooseValue(key, resident, incoming string) (merge.Pick, error) {
	if !t.mergeHelp {
		fmt.Fprintln(t.out, mergeHelpMessage)
		t.mergeHelp = true
	}

	fmt.Fprintf(t.out, "\n%s\n", color.CyanString(key))
	fmt.Fprintf(t.out, "  old: %s\n", resident)
	fmt.Fprintf(t.out, "  new: %s\n", incoming)
	fmt.Fprintf(t.out, "  diff: %s\n", renderDiff(resident, incoming))

	for {
		fmt.Fprintf(t.out, "%s (O/N): ", key)
		answer, err := t.readToken()
		if err != nil {
			return merge.PickOld, err
		}
		switch answer {
		case "o":
			return merge.PickOld, nil
		case "n":
			return merge.PickNew, nil
		}
	}
}

// renderDiff renders a character-level diff from the old to the new value
func renderDiff(resident, incoming string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(resident, incoming, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if color.NoColor {
		return plainDiff(diffs)
	}
	return dmp.DiffPrettyText(diffs)
}

// plainDiff marks deletions with [-...-] and insertions with {+...+}
func plainDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		}
	}
	return b.String()
}
