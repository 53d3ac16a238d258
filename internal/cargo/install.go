package cargo

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
	"cratui/internal/logging"
)

// Installer spawns `cargo install <id> -q` without waiting for it. The
// process is not tied to the UI and keeps running after exit.
type Installer struct {
	binary string
	bus    eventbus.EventBus
	logger *logging.Logger
}

// NewInstaller creates an installer running binary (normally "cargo")
func NewInstaller(binary string, bus eventbus.EventBus, logger *logging.Logger) *Installer {
	if binary == "" {
		binary = "cargo"
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Installer{
		binary: binary,
		bus:    bus,
		logger: logger.With("component", "installer"),
	}
}

// Install starts the install process and returns its pid. The process is
// reaped on its own goroutine, which publishes InstallFinishedEvent.
func (i *Installer) Install(id string) (int, error) {
	cmd := exec.Command(i.binary, "install", id, "-q")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s install %s: %w", i.binary, id, err)
	}
	pid := cmd.Process.Pid

	i.logger.Info("install started", "crate", id, "pid", pid)
	i.publish(domain.InstallStartedEvent{Name: id, PID: pid})

	go func() {
		err := cmd.Wait()
		output := strings.TrimSpace(out.String())
		if err != nil {
			i.logger.Error("install failed", "crate", id, "error", err.Error(), "output", output)
		} else {
			i.logger.Info("install finished", "crate", id)
		}
		i.publish(domain.InstallFinishedEvent{Name: id, Err: err, Output: output})
	}()

	return pid, nil
}

func (i *Installer) publish(e domain.DomainEvent) {
	if i.bus != nil {
		i.bus.Publish(e)
	}
}
