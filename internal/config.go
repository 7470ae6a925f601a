package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/ui"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Remote  RemoteConfig      `yaml:"remote"`
	State   StateConfig       `yaml:"state"`
	Site    SiteConfig        `yaml:"site"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Remote.Validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	if err := c.State.Validate(); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CatalogConfig locates the local catalog.
//
// Source is a file path or an http(s) URL. Hidden lists ids (or full
// repository names) never shown; it replaces the built-in list when set.
type CatalogConfig struct {
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
	Hidden  []string      `yaml:"hidden"`
	Watch   bool          `yaml:"watch"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// HideSet builds the hide set from Hidden, or the default one.
func (c *CatalogConfig) HideSet() catalog.HideSet {
	if len(c.Hidden) == 0 {
		return catalog.DefaultHideSet()
	}
	return catalog.NewHideSet(c.Hidden...)
}

// RemoteConfig controls the GitHub repository listing.
type RemoteConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate validates the remote configuration.
func (c *RemoteConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// StateConfig holds the key-value store location. An empty path keeps
// visitor state in memory only.
type StateConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the state configuration.
func (c *StateConfig) Validate() error {
	return nil
}

// SiteConfig holds page presentation and the static build output.
type SiteConfig struct {
	Title  string `yaml:"title"`
	Theme  string `yaml:"theme"`
	OutDir string `yaml:"out_dir"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Theme, validation.Required, validation.In(ui.ThemeLight, ui.ThemeDark)),
		validation.Field(&c.OutDir, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Catalog: CatalogConfig{
			Source:  "./site/projects.json",
			Timeout: 10 * time.Second,
			Watch:   true,
		},
		Remote: RemoteConfig{
			Enabled:  true,
			Endpoint: catalog.DefaultRemoteEndpoint,
			Timeout:  10 * time.Second,
		},
		State: StateConfig{
			Path: "./showcase.db",
		},
		Site: SiteConfig{
			Title:  "Projects",
			Theme:  ui.ThemeDark,
			OutDir: "./public",
		},
	}
}
