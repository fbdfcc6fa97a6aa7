package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/nurdletech/vdiff/internal/command"
	"github.com/nurdletech/vdiff/internal/logging"
)

// Config represents the vdiff configuration
type Config struct {
	Version string         `yaml:"version"`
	Editor  Editor         `yaml:"editor"`
	Process Process        `yaml:"process"`
	Log     logging.Config `yaml:"log"`
}

// Editor selects the diff editor and how it is invoked
type Editor struct {
	GUI      *bool  `yaml:"gui,omitempty"` // nil = true
	Vimdiff  string `yaml:"vimdiff,omitempty" validate:"required"`
	Gvimdiff string `yaml:"gvimdiff,omitempty" validate:"required"`
	Script   string `yaml:"script,omitempty"`
}

// Process holds the defaults applied to every command vdiff runs
type Process struct {
	Encoding    string   `yaml:"encoding,omitempty" validate:"required"`
	ShowCommand string   `yaml:"show_command,omitempty" validate:"omitempty,oneof=off short full"`
	Shell       []string `yaml:"shell,omitempty" validate:"omitempty,dive,required"`
}

const (
	ConfigFileName        = "config.yml"
	AppDirName            = "vdiff"
	EnvConfigPath         = "VDIFF_CONFIG"
	CurrentVersion        = "1.0"
	DefaultVimdiff        = "gvimdiff -v"
	DefaultGvimdiff       = "gvimdiff -f"
	DefaultShowCommand    = "short"
	configFilePermissions = 0o600
	configDirPermissions  = 0o755
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("configuration file already exists")

// DefaultTemplate is the file written by `vdiff init`.
const DefaultTemplate = `# vdiff configuration
version: "1.0"

editor:
  # Use the GUI editor when $DISPLAY is set.
  gui: true
  # Terminal and GUI editor command lines.
  vimdiff: "gvimdiff -v"
  gvimdiff: "gvimdiff -f"
  # Editor script passed as "-S <script>", if any.
  # script: ~/.config/vdiff/settings.vim

process:
  encoding: utf-8
  # How commands appear in error messages: off, short or full.
  show_command: short
  # Interpreter used for shell commands; empty means "sh -c".
  # shell: ["bash", "-c"]

log:
  level: warn
  format: console
`

// DefaultPath returns the configuration file location: $VDIFF_CONFIG when set,
// otherwise vdiff/config.yml under the user configuration directory.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	config := &Config{}
	_ = config.Validate()
	return config
}

// LoadConfig loads configuration from path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig writes config to path, creating the parent directory.
func SaveConfig(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return writeFile(path, data)
}

// WriteDefault writes DefaultTemplate to path unless a file is already there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	return writeFile(path, []byte(DefaultTemplate))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate fills in defaults and validates the configuration
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Editor.Vimdiff == "" {
		c.Editor.Vimdiff = DefaultVimdiff
	}
	if c.Editor.Gvimdiff == "" {
		c.Editor.Gvimdiff = DefaultGvimdiff
	}
	if c.Process.Encoding == "" {
		c.Process.Encoding = command.DefaultEncoding
	}
	if c.Process.ShowCommand == "" {
		c.Process.ShowCommand = DefaultShowCommand
	}
	c.Log.ApplyDefaults()

	if err := validateStruct(c); err != nil {
		return err
	}
	return c.Log.Validate()
}

// PreferGUI reports whether the GUI editor should be used when available
func (c *Config) PreferGUI() bool {
	return c.Editor.GUI == nil || *c.Editor.GUI
}

// Preferences converts the process section into command preferences. The
// logger and spawner are left for the caller to set.
func (c *Config) Preferences() (command.Preferences, error) {
	show, err := command.ParseShowCommand(c.Process.ShowCommand)
	if err != nil {
		return command.Preferences{}, err
	}
	return command.Preferences{
		Encoding:    c.Process.Encoding,
		ShowCommand: show,
		Shell:       c.Process.Shell,
	}, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their YAML names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

func validateStruct(c *Config) error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		// Namespace is "Config.process.show_command"; drop the root.
		field := e.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		messages = append(messages, field+" "+describe(e))
	}
	return errors.New(strings.Join(messages, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
