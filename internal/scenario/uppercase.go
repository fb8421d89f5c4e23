package scenario

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StringList is an ordered, mutable sequence of text values.
type StringList []string

// CaseMode selects how letters are uppercased.
type CaseMode string

const (
	// CaseASCII changes only a-z, byte by byte, like PHP 8 strtoupper.
	CaseASCII CaseMode = "ascii"
	// CaseUnicode applies full Unicode case mapping.
	CaseUnicode CaseMode = "unicode"
)

// ParseCaseMode validates a case mode name.
func ParseCaseMode(s string) (CaseMode, error) {
	switch CaseMode(s) {
	case CaseASCII, CaseUnicode:
		return CaseMode(s), nil
	default:
		return "", fmt.Errorf("unknown case mode %q", s)
	}
}

// UppercaseInPlace replaces every element of list with its uppercase form.
// Elements are written back through their index, so the caller's backing
// array sees the change.
func UppercaseInPlace(list StringList, mode CaseMode) {
	upper := upperFunc(mode)
	for i := range list {
		list[i] = upper(list[i])
	}
}

func upperFunc(mode CaseMode) func(string) string {
	if mode == CaseUnicode {
		caser := cases.Upper(language.Und)
		return caser.String
	}
	return asciiUpper
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// PrintR writes list in PHP print_r layout.
func PrintR(w io.Writer, list StringList) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Array\n(\n")
	for i, v := range list {
		bw.WriteString("    [")
		bw.WriteString(strconv.Itoa(i))
		bw.WriteString("] => ")
		bw.WriteString(v)
		bw.WriteByte('\n')
	}
	bw.WriteString(")\n")
	return bw.Flush()
}

// Uppercase is the Uppercase-Transform scenario.
type Uppercase struct {
	Input StringList
	Mode  CaseMode
}

func (u *Uppercase) Name() string { return "uppercase" }

// Run uppercases a fresh copy of Input and prints it.
func (u *Uppercase) Run(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	list := make(StringList, len(u.Input))
	copy(list, u.Input)

	UppercaseInPlace(list, u.Mode)

	if err := PrintR(w, list); err != nil {
		return fmt.Errorf("printing list: %w", err)
	}
	return nil
}
