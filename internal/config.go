package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/rapport/internal/view"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Notes  NotesConfig       `yaml:"notes"`
	View   ViewConfig        `yaml:"view"`
	Inbox  InboxConfig       `yaml:"inbox"`
	Export ExportConfig      `yaml:"export"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.View.Validate(); err != nil {
		return err
	}
	return c.Export.Validate()
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

// SQLiteConfig holds the note store location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds API authentication configuration.
//
// Mode controls how authentication is enforced on /api:
//   - "disabled" (default): no authentication required.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NotesConfig holds validation rules for new notes.
type NotesConfig struct {
	// EnforceTimeOrder rejects notes whose end time is not after the start.
	EnforceTimeOrder bool `yaml:"enforce_time_order"`
}

// ViewConfig holds projection defaults.
type ViewConfig struct {
	DefaultMode   string `yaml:"default_mode"`
	TerminalStyle string `yaml:"terminal_style"`
	TerminalWidth int    `yaml:"terminal_width"`
}

// Validate validates the view configuration.
func (c *ViewConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultMode, validation.In(string(view.ModeCard), string(view.ModeList))),
		validation.Field(&c.TerminalStyle, validation.In("auto", "dark", "light", "ascii", "notty", "pink", "dracula", "tokyo-night")),
		validation.Field(&c.TerminalWidth, validation.Min(20), validation.Max(400)),
	)
}

// Mode returns the configured default projection mode.
func (c *ViewConfig) Mode() view.Mode {
	m, err := view.ParseMode(c.DefaultMode)
	if err != nil {
		return view.ModeCard
	}
	return m
}

// InboxConfig holds the drop folder for Markdown note files. An empty
// Path disables the inbox.
type InboxConfig struct {
	Path string `yaml:"path"`
}

// Enabled reports whether the inbox watcher should run.
func (c *InboxConfig) Enabled() bool {
	return c.Path != ""
}

// ExportConfig holds printable export settings.
type ExportConfig struct {
	Dir    string       `yaml:"dir"`
	Chrome ChromeConfig `yaml:"chrome"`
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	); err != nil {
		return err
	}
	return c.Chrome.Validate()
}

// ChromeConfig configures the headless browser used for PDF printing.
type ChromeConfig struct {
	Enabled  bool          `yaml:"enabled"`
	ExecPath string        `yaml:"exec_path"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate validates the chrome configuration.
func (c *ChromeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Min(time.Second), validation.Max(5*time.Minute)),
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
		SQLite: SQLiteConfig{
			Path: "./rapport.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		View: ViewConfig{
			DefaultMode:   string(view.ModeCard),
			TerminalStyle: "auto",
			TerminalWidth: 80,
		},
		Export: ExportConfig{
			Dir: "./exports",
			Chrome: ChromeConfig{
				Enabled: true,
				Timeout: 30 * time.Second,
			},
		},
	}
}
