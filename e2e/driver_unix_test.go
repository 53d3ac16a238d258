//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20   // 1 MiB of scrollback
var binPath = "cratui_e2e" // unified binary path

const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyEsc   = "\x1b"
	KeyNext  = "j"
	KeyQuit  = "q"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives the cratui binary through a pty
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	registry  *fakeRegistry

	// output ring, written by the reader goroutine
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{
		t:   t,
		buf: make([]byte, ringSize),
	}
}

// StartApp launches cratui against the workspace config, manifest and registry.
// args are passed after the wiring flags.
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	cmdArgs := []string{
		"--config", tf.ConfigPath(),
		"--manifest", tf.ManifestPath(),
	}
	if tf.registry != nil {
		cmdArgs = append(cmdArgs, "--registry-url", tf.registry.URL())
	}
	cmdArgs = append(cmdArgs, args...)
	tf.cmd = exec.Command(binPath, cmdArgs...)
	tf.cmd.Dir = tf.workspace

	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace, // isolate $HOME
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"CRATUI_DISABLE_OSC52=1",
		"CRATUI_E2E_TEST=1",
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}

	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to size pty: %w", err)
	}

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

// startReader copies pty output into the ring until the pty closes
func (tf *TUITestFramework) startReader() {
	go func() {
		chunk := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(chunk)
			tf.mu.Lock()
			for _, b := range chunk[:n] {
				tf.buf[tf.head] = b
				tf.head = (tf.head + 1) % ringSize
				tf.full = tf.full || tf.head == 0
			}
			tf.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// SendEnter sends an Enter key
func (tf *TUITestFramework) SendEnter() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEnter)
}

// SendCtrlC sends Ctrl+C to terminate the application
func (tf *TUITestFramework) SendCtrlC() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlC)
}

// Escape leaves the search bar
func (tf *TUITestFramework) Escape() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEsc)
}

// Type enters text into the search bar and commits it
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	if err := tf.SendKeys(text); err != nil {
		return err
	}
	return tf.SendEnter()
}

// Down selects the next result
func (tf *TUITestFramework) Down() error {
	tf.t.Helper()
	return tf.SendKeys(KeyNext)
}

// Ready waits for the ready marker in the title bar
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.SeePlainWithin("__READY__", 5*time.Second)
}

// SeePlain waits up to three seconds for text in the output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.SeePlainWithin(text, 3*time.Second)
}

// SeePlainWithin waits up to timeout for text in the output
func (tf *TUITestFramework) SeePlainWithin(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.waitPlain(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// Quit leaves the search bar and presses q
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	if err := tf.Escape(); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return tf.SendKeys(KeyQuit)
}

// WaitExit waits for the process to exit
func (tf *TUITestFramework) WaitExit(timeout time.Duration) error {
	tf.t.Helper()
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		tf.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app did not exit within %s", timeout)
	}
}

// WaitForE polls the plain output until pred holds. On timeout the error
// carries the last 4 KiB of output.
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	if tf.waitPlain(pred, timeout) {
		return nil
	}
	tail := tf.plain()
	if len(tail) > 4096 {
		tail = tail[len(tail)-4096:]
	}
	return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tail)
}

func (tf *TUITestFramework) waitPlain(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for !pred(tf.plain()) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
	return true
}

// plain returns the captured output with escape sequences stripped
func (tf *TUITestFramework) plain() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	var raw []byte
	if tf.full {
		raw = append(append(raw, tf.buf[tf.head:]...), tf.buf[:tf.head]...)
	} else {
		raw = tf.buf[:tf.head]
	}
	return ansiRe.ReplaceAllString(string(raw), "")
}

// Cleanup closes the PTY, terminates the application and stops the registry
func (tf *TUITestFramework) Cleanup() {
	// Close PTY first to deliver SIGHUP to child process
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.registry != nil {
		tf.registry.Close()
		tf.registry = nil
	}
}
