package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cratui/internal/eventbus"
	"cratui/internal/logging"
	"cratui/internal/ui"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	prev := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = prev })
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestRefusesWithoutTerminal(t *testing.T) {
	withTerminal(t, false)
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := executeCommand(t, "--config", path, "serde")
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.NoFileExists(t, path)
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cmd := NewRootCommand("dev")
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--max-pages", "3",
		"--registry-url", "http://127.0.0.1:1/api/v1/crates",
		"--log-level", "DEBUG",
	}))
	opts := optionsOf(t, cmd)

	cfg, svc, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, path, svc.Path())
	assert.Equal(t, 3, cfg.Search.MaxPages)
	assert.Equal(t, "http://127.0.0.1:1/api/v1/crates", cfg.Search.RegistryURL)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.FileExists(t, path)
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCommand("dev")
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(dir, "a.toml"), "--log-level", "loud"}))
	_, _, err := loadConfig(cmd, optionsOf(t, cmd))
	assert.ErrorContains(t, err, "invalid log level")

	cmd = NewRootCommand("dev")
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(dir, "b.toml"), "--max-pages", "0"}))
	_, _, err = loadConfig(cmd, optionsOf(t, cmd))
	assert.ErrorContains(t, err, "max_pages")
}

// optionsOf reads the parsed flag values back into options
func optionsOf(t *testing.T, cmd *cobra.Command) *options {
	t.Helper()
	f := cmd.Flags()
	opts := &options{}
	var err error
	opts.configPath, err = f.GetString("config")
	require.NoError(t, err)
	opts.manifestPath, err = f.GetString("manifest")
	require.NoError(t, err)
	opts.registryURL, err = f.GetString("registry-url")
	require.NoError(t, err)
	opts.logLevel, err = f.GetString("log-level")
	require.NoError(t, err)
	opts.maxPages, err = f.GetInt("max-pages")
	require.NoError(t, err)
	return opts
}

func TestResolveManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[package]\nname = \"x\"\n"), 0o644))

	assert.Equal(t, manifest, resolveManifest(dir, logging.NopLogger()))

	missing := filepath.Join(dir, "nested", "Cargo.toml")
	assert.Equal(t, missing, resolveManifest(missing, logging.NopLogger()))
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestForwardEventsSendsInstallCompletions(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	s := &recordingSender{}
	forwardEvents(bus, s)

	bus.Publish(eventbus.InstallStartedEvent{Name: "ripgrep", PID: 1})
	bus.Publish(eventbus.InstallFinishedEvent{Name: "ripgrep"})

	require.Eventually(t, func() bool { return s.count() == 1 }, time.Second, 5*time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, ui.EventMsg{Event: eventbus.InstallFinishedEvent{Name: "ripgrep"}}, s.msgs[0])
}
