// Package links builds the external URLs of a crate and hands them to the
// platform opener.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"cratui/internal/domain"
)

// ErrUnsupportedPlatform is returned when no opener is known for the OS
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrNoRepository is returned when a crate does not publish a repository URL
var ErrNoRepository = errors.New("crate has no repository")

// RegistryURL returns the crates.io page of id
func RegistryURL(id string) string {
	return "https://crates.io/crates/" + url.PathEscape(id)
}

// DocsURL returns the docs.rs page of id
func DocsURL(id string) string {
	return "https://docs.rs/" + url.PathEscape(id) + "/latest"
}

// RepositoryURL returns the repository of c, or ErrNoRepository
func RepositoryURL(c domain.Crate) (string, error) {
	if c.Repository == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRepository, c.ID)
	}
	return c.Repository, nil
}

// Opener opens a URL outside the terminal
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// SystemOpener uses the platform's default handler (open, xdg-open, rundll32).
type SystemOpener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewSystemOpener creates an opener for the running OS
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS, run: startDetached}
}

// Open starts the platform opener for u and returns without waiting.
func (o *SystemOpener) Open(u string) error {
	name, args, err := command(o.goos, u)
	if err != nil {
		return err
	}
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", u, err)
	}
	return nil
}

func command(goos, u string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{u}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{u}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", u}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
