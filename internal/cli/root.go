// Package cli wires the configuration, services and the terminal UI behind
// the cratui command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cratui/internal/cargo"
	"cratui/internal/clipboard"
	"cratui/internal/config"
	"cratui/internal/discovery"
	"cratui/internal/eventbus"
	"cratui/internal/links"
	"cratui/internal/logging"
	"cratui/internal/registry"
	"cratui/internal/ui"
	"cratui/internal/ui/fetch"
	"cratui/internal/ui/pages"
	"cratui/internal/ui/views"
)

// E2EEnv makes the UI draw a ready marker for the pty driven tests
const E2EEnv = "CRATUI_E2E_TEST"

// ErrNotTerminal is returned when stdin or stdout is not a terminal
var ErrNotTerminal = errors.New("cratui must be run in an interactive terminal")

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

type options struct {
	configPath   string
	manifestPath string
	registryURL  string
	logLevel     string
	maxPages     int
}

// NewRootCommand builds the cratui command
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "cratui [query...]",
		Short: "Browse crates.io from the terminal",
		Long: `cratui searches the crates.io registry and lets you open, add, remove,
install, favourite and copy crates without leaving the terminal.
Words given on the command line are searched for straight away.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return ErrNotTerminal
			}
			cfg, svc, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, svc, opts, strings.Join(args, " "))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/cratui/config.toml)")
	flags.StringVarP(&opts.manifestPath, "manifest", "m", "", "Cargo.toml to edit (default is the nearest one above the working directory)")
	flags.IntVar(&opts.maxPages, "max-pages", 0, "maximum number of batches fetched per search")
	flags.StringVar(&opts.registryURL, "registry-url", "", "registry search endpoint")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	return cmd
}

// Execute runs the root command
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// loadConfig reads the config file and applies flag overrides on top of it
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigService(opts.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("max-pages") {
		cfg.Search.MaxPages = opts.maxPages
	}
	if flags.Changed("registry-url") {
		cfg.Search.RegistryURL = opts.registryURL
	}
	if flags.Changed("log-level") {
		if !logging.ValidLevel(opts.logLevel) {
			return nil, nil, fmt.Errorf("invalid log level %q", opts.logLevel)
		}
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

func run(ctx context.Context, cfg *config.Config, svc config.ConfigService, opts *options, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logging.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()
	logger.Info("starting", "config", svc.Path(), "registry", cfg.Search.RegistryURL)

	bus := eventbus.New(logger)
	defer bus.Close()
	subscribeAudit(bus, logger)
	svc = config.NewConfigServiceWithBus(svc.Path(), bus)

	manifestPath := resolveManifest(opts.manifestPath, logger)
	manifest := cargo.NewManifest(manifestPath, bus)
	installer := cargo.NewInstaller("cargo", bus, logger)
	client := registry.NewClient(
		registry.WithBaseURL(cfg.Search.RegistryURL),
		registry.WithLogger(logger),
	)

	pager := ui.NewOvPager()
	model := ui.NewModel(ui.Options{
		Search: pages.SearchDeps{
			Coordinator: fetch.NewCoordinator(ctx, client, cfg.Search.MaxPages, bus, logger),
			Manifest:    manifest,
			Installer:   installer,
			Opener:      links.NewSystemOpener(),
			Clipboard:   clipboard.New(),
			Favourites:  cfg,
			Bus:         bus,
			Logger:      logger,
		},
		Manifest:     manifest,
		Favourites:   cfg,
		Palette:      paletteOf(cfg),
		Pager:        pager,
		TickRate:     time.Duration(cfg.Terminal.TickRateMs) * time.Millisecond,
		InitialQuery: query,
		ShowReady:    os.Getenv(E2EEnv) == "1",
		Logger:       logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	pager.SetProgram(p)
	forwardEvents(bus, p)

	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}

	if err := svc.SaveFavourites(cfg.FavouriteIDs()); err != nil {
		logger.Error("failed to save config", "error", err)
		runErr = errors.Join(runErr, err)
	}
	logger.Info("exiting")
	return runErr
}

// resolveManifest finds the manifest to edit. Without one the operations
// report ErrManifestNotFound against ./Cargo.toml.
func resolveManifest(explicit string, logger *logging.Logger) string {
	path, err := discovery.ResolveManifest(explicit)
	if err == nil {
		return path
	}
	logger.Warn("no manifest found", "error", err)
	if explicit != "" {
		return explicit
	}
	cwd, cerr := os.Getwd()
	if cerr != nil {
		cwd = "."
	}
	return filepath.Join(cwd, discovery.ManifestName)
}

func paletteOf(cfg *config.Config) views.Palette {
	return views.Palette{
		Primary:   cfg.Colors.Primary,
		Secondary: cfg.Colors.Secondary,
		Warn:      cfg.Colors.Warn,
		Error:     cfg.Colors.Error,
	}
}

// subscribeAudit writes every domain event to the log
func subscribeAudit(bus eventbus.EventBus, logger *logging.Logger) {
	audit := logger.With("component", "events")
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchCommitted,
		eventbus.EventBatchLoaded,
		eventbus.EventFetchFailed,
		eventbus.EventDependencyAdded,
		eventbus.EventDependencyRemoved,
		eventbus.EventInstallStarted,
		eventbus.EventInstallFinished,
		eventbus.EventFavouriteAdded,
		eventbus.EventLinkOpened,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			audit.Debug("event", "type", string(e.Type()), "event", fmt.Sprintf("%+v", e))
		})
	}
}

// sender is the part of tea.Program the event forwarder needs
type sender interface {
	Send(msg tea.Msg)
}

// forwardEvents hands background completions to the UI loop
func forwardEvents(bus eventbus.EventBus, p sender) {
	bus.Subscribe(eventbus.EventInstallFinished, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})
}

// Main runs the command and maps errors to an exit code
func Main(version string, stderr io.Writer) int {
	if err := Execute(version); err != nil {
		fmt.Fprintf(stderr, "cratui: %v\n", err)
		return 1
	}
	return 0
}
