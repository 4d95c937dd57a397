package config

import (
	"os"
	"path/filepath"
	"strings"

	"rime/internal/errors"
	"rime/internal/lister"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Directories struct {
		Start string `yaml:"start"` // Directory the browser opens in
	} `yaml:"directories"`
	Browser struct {
		Patterns   []string `yaml:"patterns"`    // Glob patterns for recognized audio files
		ShowHidden bool     `yaml:"show_hidden"` // List dot-files and dot-directories
		Watch      bool     `yaml:"watch"`       // Refresh the listing when the directory changes
	} `yaml:"browser"`
	Logging struct {
		File  string `yaml:"file"`  // Log file; empty discards logs
		Debug bool   `yaml:"debug"` // Enable debug logging
	} `yaml:"logging"`
	Theme Theme `yaml:"theme"`
}

// Theme holds the colors the browser renders with.
type Theme struct {
	Name     string `yaml:"name"`               // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary,omitempty"`  // Titles and the cursor row
	Success  string `yaml:"success,omitempty"`  // Selection markers
	Warning  string `yaml:"warning,omitempty"`  // Sentinel values
	Error    string `yaml:"error,omitempty"`    // Status line errors
	Info     string `yaml:"info,omitempty"`     // Directory rows
	Emphasis string `yaml:"emphasis,omitempty"` // Field names
	Border   string `yaml:"border,omitempty"`   // Column frames
}

// DefaultPath returns ~/.config/rime/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot locate home directory")
	}
	return filepath.Join(home, ".config", "rime", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	// Keys absent from the file keep their defaults; theme colors left unset
	// come from the named theme.
	cfg.Theme = Theme{Name: cfg.Theme.Name}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	if len(cfg.Browser.Patterns) == 0 {
		cfg.Browser.Patterns = append([]string(nil), lister.DefaultPatterns...)
	}
	cfg.Theme.fill()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Directories.Start = "."
	cfg.Browser.Patterns = append([]string(nil), lister.DefaultPatterns...)
	cfg.Browser.ShowHidden = true
	cfg.Browser.Watch = false
	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.FromOS("create config directory", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.FromOS("write config file", path, err)
	}
	return nil
}

// Validate checks that every pattern compiles and the theme is known.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	for i, p := range c.Browser.Patterns {
		if strings.TrimSpace(p) == "" {
			return errors.NewConfigError("empty pattern", "browser.patterns", errors.InvalidConfig, errors.Newf("pattern %d", i))
		}
	}
	if _, err := lister.CompilePatterns(c.Browser.Patterns); err != nil {
		return err
	}

	if !knownTheme(c.Theme.Name) {
		return errors.NewConfigError("unknown theme", "theme.name", errors.InvalidConfig, errors.Newf("%q, choose one of %s", c.Theme.Name, strings.Join(ListThemes(), ", ")))
	}
	return nil
}

// ListerOptions converts the browser settings into lister options.
func (c *Config) ListerOptions() []lister.Option {
	return []lister.Option{
		lister.WithPatterns(c.Browser.Patterns),
		lister.WithHidden(c.Browser.ShowHidden),
	}
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"border":   "105",
	},
	"light": {
		"primary":  "135",
		"success":  "150",
		"warning":  "222",
		"error":    "210",
		"info":     "117",
		"emphasis": "219",
		"border":   "135",
	},
	"monochrome": {
		"primary":  "245",
		"success":  "252",
		"warning":  "241",
		"error":    "232",
		"info":     "248",
		"emphasis": "255",
		"border":   "245",
	},
	"ocean": {
		"primary":  "31",  // Teal
		"success":  "36",  // Green-Blue
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "33",  // Blue
		"emphasis": "51",  // Cyan
		"border":   "31",  // Teal
	},
	"sunset": {
		"primary":  "208",
		"success":  "154",
		"warning":  "214",
		"error":    "196",
		"info":     "69",
		"emphasis": "203",
		"border":   "208",
	},
}

func knownTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme. The name is kept
// as given so Validate can reject unknown themes.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

func (t *Theme) fill() {
	base := GetTheme(t.Name)
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&t.Primary, "primary"},
		{&t.Success, "success"},
		{&t.Warning, "warning"},
		{&t.Error, "error"},
		{&t.Info, "info"},
		{&t.Emphasis, "emphasis"},
		{&t.Border, "border"},
	} {
		if *f.dst == "" {
			*f.dst = base[f.key]
		}
	}
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
