// Package view implements the interactive console menus.
package view

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Console wraps prompt-based terminal I/O. Reader and writer are injectable
// for tests.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole builds a console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ReadString prompts and returns one trimmed line.
func (c *Console) ReadString(prompt string) string {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// ReadInt prompts until the user types a valid integer.
func (c *Console) ReadInt(prompt string) int {
	for {
		raw := c.ReadString(prompt)
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
		c.Error("please type a valid number")
	}
}

// ReadDate prompts for an optional yyyy-mm-dd date. Empty input returns nil.
func (c *Console) ReadDate(prompt string) (*time.Time, error) {
	raw := c.ReadString(prompt)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return &t, nil
}

// Pause waits for Enter.
func (c *Console) Pause() {
	fmt.Fprintln(c.out, "\nPress Enter to continue...")
	_, _ = c.in.ReadString('\n')
}

// ClearScreen clears the terminal with an ANSI escape.
func (c *Console) ClearScreen() {
	fmt.Fprint(c.out, "\033[H\033[2J")
}

// Separator prints a horizontal rule.
func (c *Console) Separator() {
	fmt.Fprintln(c.out, strings.Repeat("=", 71))
}

// Title prints an uppercase section header between separators.
func (c *Console) Title(title string) {
	c.Separator()
	fmt.Fprintln(c.out, "  "+strings.ToUpper(title))
	c.Separator()
}

// Println writes a plain line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Printf writes a formatted line fragment.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Success prints a checkmarked message.
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, "✓ "+msg)
}

// Error prints a crossmarked message.
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, "✗ "+msg)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not set"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return "not set"
	}
	return t.Format("2006-01-02 15:04")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
