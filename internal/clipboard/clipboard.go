// Package clipboard copies text to the system clipboard, falling back to an
// OSC 52 escape sequence written to the controlling terminal.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Method reports how the text reached the clipboard
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	if m == MethodOSC52 {
		return "osc52"
	}
	return "system"
}

// Clipboard writes with the system clipboard first and OSC 52 second
type Clipboard struct {
	writeSystem func(string) error
	writeOSC52  func(string) error
	last        Method
}

// New returns a clipboard backed by atotto/clipboard and /dev/tty
func New() *Clipboard {
	return &Clipboard{
		writeSystem: clipboard.WriteAll,
		writeOSC52:  writeOSC52Clipboard,
	}
}

// Copy puts text on the clipboard
func (c *Clipboard) Copy(text string) error {
	err := c.writeSystem(text)
	if err == nil {
		c.last = MethodSystem
		return nil
	}
	oscErr := c.writeOSC52(text)
	if oscErr == nil {
		c.last = MethodOSC52
		return nil
	}
	return combineErrors(err, oscErr)
}

// LastMethod returns the method of the last successful copy
func (c *Clipboard) LastMethod() Method { return c.last }

func writeOSC52Clipboard(text string) error {
	if !osc52Supported() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text, os.Getenv("TERM"), os.Getenv("TMUX") != "")
}

func writeOSC52Sequence(w io.Writer, text, term string, tmux bool) error {
	seq := osc52.New(text)
	switch {
	case tmux:
		// tmux may or may not pass plain sequences through
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		_, err := seq.Tmux().WriteTo(w)
		return err
	case strings.HasPrefix(strings.ToLower(term), "screen"):
		_, err := seq.Screen().WriteTo(w)
		return err
	}
	_, err := seq.WriteTo(w)
	return err
}

func osc52Supported() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CRATUI_DISABLE_OSC52"))) {
	case "1", "true", "yes", "on":
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}

func combineErrors(systemErr, oscErr error) error {
	if missingDisplay() {
		return fmt.Errorf("no GUI clipboard available (DISPLAY/WAYLAND_DISPLAY unset); OSC52 fallback failed: %w", oscErr)
	}
	return fmt.Errorf("system clipboard failed: %v; OSC52 fallback failed: %w", systemErr, oscErr)
}

func missingDisplay() bool {
	return strings.TrimSpace(os.Getenv("DISPLAY")) == "" && strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) == ""
}
