package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"cratui/internal/eventbus"
)

// DefaultRegistryURL is the crates.io search endpoint
const DefaultRegistryURL = "https://crates.io/api/v1/crates"

// EnvPrefix prefixes environment variable overrides, e.g. CRATUI_SEARCH_MAX_PAGES
const EnvPrefix = "CRATUI"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Config represents the application configuration
type Config struct {
	Terminal   TerminalConfig   `toml:"terminal" mapstructure:"terminal"`
	Colors     ColorConfig      `toml:"colors" mapstructure:"colors"`
	Favourites FavouritesConfig `toml:"favourites" mapstructure:"favourites"`
	Search     SearchConfig     `toml:"search" mapstructure:"search"`
	Log        LogConfig        `toml:"log" mapstructure:"log"`
}

// TerminalConfig controls the render loop
type TerminalConfig struct {
	TickRateMs int `toml:"tick_rate_ms" mapstructure:"tick_rate_ms"`
}

// ColorConfig holds hex colors (#rrggbb) for the title bar and accents
type ColorConfig struct {
	Primary   string `toml:"primary" mapstructure:"primary"`
	Secondary string `toml:"secondary" mapstructure:"secondary"`
	Warn      string `toml:"warn" mapstructure:"warn"`
	Error     string `toml:"error" mapstructure:"error"`
}

// FavouritesConfig is the ordered list of favourite crate ids
type FavouritesConfig struct {
	Crates []string `toml:"crates" mapstructure:"crates"`
}

// SearchConfig controls the registry search
type SearchConfig struct {
	MaxPages    int    `toml:"max_pages" mapstructure:"max_pages"`
	RegistryURL string `toml:"registry_url" mapstructure:"registry_url"`
}

// LogConfig controls the structured file log
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	File  string `toml:"file" mapstructure:"file"`
}

// AddFavourite appends id to the favourites unless it is already present.
// It reports whether the list changed.
func (c *Config) AddFavourite(id string) bool {
	if id == "" || slices.Contains(c.Favourites.Crates, id) {
		return false
	}
	c.Favourites.Crates = append(c.Favourites.Crates, id)
	return true
}

// Validate checks value ranges and color formats
func (c *Config) Validate() error {
	var errs []error
	if c.Terminal.TickRateMs <= 0 {
		errs = append(errs, fmt.Errorf("terminal.tick_rate_ms must be positive, got %d", c.Terminal.TickRateMs))
	}
	if c.Search.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("search.max_pages must be positive, got %d", c.Search.MaxPages))
	}
	if strings.TrimSpace(c.Search.RegistryURL) == "" {
		errs = append(errs, errors.New("search.registry_url must not be empty"))
	}
	for name, value := range map[string]string{
		"primary":   c.Colors.Primary,
		"secondary": c.Colors.Secondary,
		"warn":      c.Colors.Warn,
		"error":     c.Colors.Error,
	} {
		if !hexColor.MatchString(value) {
			errs = append(errs, fmt.Errorf("colors.%s must be a #rrggbb color, got %q", name, value))
		}
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	SaveFavourites(ids []string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user config directory
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cratui")
}

// NewConfigService creates a config service for path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, writing the defaults first when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Log.File = filepath.Join(filepath.Dir(cs.filePath), "cratui.log")
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return nil, err
		}
		return cs.LoadFromPath(cs.filePath)
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// SaveFavourites rewrites the config file with its favourites replaced by
// ids. Every other value is taken from the file as written, so environment
// and flag overrides applied after Load never reach disk.
func (cs *configService) SaveFavourites(ids []string) error {
	cfg, err := cs.readFile()
	if err != nil {
		return err
	}
	cfg.Favourites.Crates = slices.Clone(ids)
	return cs.Save(cfg)
}

// readFile decodes the config file without viper, leaving out any
// environment overrides. A missing file yields the defaults.
func (cs *configService) readFile() (*Config, error) {
	cfg := DefaultConfig()
	cfg.Log.File = filepath.Join(filepath.Dir(cs.filePath), "cratui.log")

	data, err := os.ReadFile(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads path through viper so every key can be overridden
// from the environment. Keys missing from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v := newViper(filepath.Dir(path))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Favourites.Crates == nil {
		cfg.Favourites.Crates = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("terminal.tick_rate_ms", d.Terminal.TickRateMs)
	v.SetDefault("colors.primary", d.Colors.Primary)
	v.SetDefault("colors.secondary", d.Colors.Secondary)
	v.SetDefault("colors.warn", d.Colors.Warn)
	v.SetDefault("colors.error", d.Colors.Error)
	v.SetDefault("favourites.crates", d.Favourites.Crates)
	v.SetDefault("search.max_pages", d.Search.MaxPages)
	v.SetDefault("search.registry_url", d.Search.RegistryURL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", filepath.Join(dir, "cratui.log"))
	return v
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Terminal: TerminalConfig{TickRateMs: 250},
		Colors: ColorConfig{
			Primary:   "#ee6ff8",
			Secondary: "#ff00ff",
			Warn:      "#e67e22",
			Error:     "#ff0303",
		},
		Favourites: FavouritesConfig{Crates: []string{}},
		Search: SearchConfig{
			MaxPages:    20,
			RegistryURL: DefaultRegistryURL,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(configDir(), "cratui.log"),
		},
	}
}

// FavouriteIDs returns the favourites in insertion order
func (c *Config) FavouriteIDs() []string {
	return slices.Clone(c.Favourites.Crates)
}
