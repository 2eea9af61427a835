package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fileref/internal/constants"
	apperrors "fileref/internal/errors"
	"fileref/internal/uti"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	SMB     SMBConfig     `json:"smb" yaml:"smb"`
	Types   TypesConfig   `json:"types" yaml:"types"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // logrus level name
	Format string `json:"format" yaml:"format"` // "text", "json"
}

// SMBConfig represents settings for shares that are not mounted locally
type SMBConfig struct {
	UseKeyring          bool   `json:"useKeyring" yaml:"useKeyring"`                   // Store credentials in the OS keyring
	RememberCredentials bool   `json:"rememberCredentials" yaml:"rememberCredentials"` // Save URL and env credentials once they work
	DialTimeout         string `json:"dialTimeout" yaml:"dialTimeout"`                 // Go duration, e.g. "5s"
}

// TypesConfig represents type registry settings
type TypesConfig struct {
	DisableSniffing bool              `json:"disableSniffing" yaml:"disableSniffing"` // Never read file content to find a type
	Declarations    []uti.Declaration `json:"declarations" yaml:"declarations"`       // Added to the built-in types
}

// Timeout returns the parsed dial timeout, or the default when unset or invalid.
func (c SMBConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.DialTimeout)
	if err != nil || d <= 0 {
		return constants.DefaultSMBDialTimeout
	}
	return d
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager using the OS-specific path
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// NewManagerWithPath creates a manager for an explicit file. The format is
// chosen by extension: .yaml/.yml for YAML, anything else for JSON.
func NewManagerWithPath(path string) *Manager {
	return &Manager{configPath: path}
}

// Path returns the configuration file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", m.configPath).Debug("config file not found, using defaults")
		return config, nil
	}
	if err != nil {
		return nil, apperrors.NewConfigError("load", "error reading config file", err)
	}

	// Parse config file into a temporary config
	var fileConfig Config
	if err := m.unmarshal(data, &fileConfig); err != nil {
		return nil, apperrors.NewConfigError("load", fmt.Sprintf("error parsing config file %s: %v", m.configPath, err), err)
	}

	// Merge file config with defaults
	mergeConfigs(config, &fileConfig)
	if err := config.Validate(); err != nil {
		return nil, apperrors.NewConfigError("load", fmt.Sprintf("invalid config file %s: %v", m.configPath, err), err)
	}
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.NewConfigError("save", "error creating config directory", err)
	}

	data, err := m.marshal(config)
	if err != nil {
		return apperrors.NewConfigError("save", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return apperrors.NewConfigError("save", "error writing config file", err)
	}

	return nil
}

func (m *Manager) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(m.configPath))
	return ext == ".yaml" || ext == ".yml"
}

func (m *Manager) unmarshal(data []byte, config *Config) error {
	if m.isYAML() {
		return yaml.Unmarshal(data, config)
	}
	return json.Unmarshal(data, config)
}

func (m *Manager) marshal(config *Config) ([]byte, error) {
	if m.isYAML() {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		result = multierror.Append(result, fmt.Errorf("logging.format: %q is neither text nor json", c.Logging.Format))
	}
	if d, err := time.ParseDuration(c.SMB.DialTimeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("smb.dialTimeout: %w", err))
	} else if d <= 0 {
		result = multierror.Append(result, fmt.Errorf("smb.dialTimeout: %s is not positive", d))
	}
	for i, d := range c.Types.Declarations {
		if strings.TrimSpace(d.Identifier) == "" {
			result = multierror.Append(result, fmt.Errorf("types.declarations[%d]: identifier is empty", i))
		}
		for _, p := range d.Patterns {
			if !doublestar.ValidatePattern(p) {
				result = multierror.Append(result, fmt.Errorf("types.declarations[%d]: invalid pattern %q", i, p))
			}
		}
	}

	return result.ErrorOrNil()
}

// ApplyTypes declares the configured types in reg, in file order
func (c *Config) ApplyTypes(reg *uti.Registry) error {
	var result *multierror.Error
	for _, d := range c.Types.Declarations {
		if err := reg.Declare(d); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return getDefaultConfig()
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Format: constants.DefaultLogFormat,
		},
		SMB: SMBConfig{
			UseKeyring:          false,
			RememberCredentials: false,
			DialTimeout:         constants.DefaultSMBDialTimeout.String(),
		},
		Types: TypesConfig{
			DisableSniffing: false,
			Declarations:    make([]uti.Declaration, 0),
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions.
// An existing YAML file is used when there is no JSON one.
func getConfigPath() string {
	dir := getConfigDir()
	if dir == "" {
		return constants.ConfigFileJSON
	}
	jsonPath := filepath.Join(dir, constants.ConfigFileJSON)
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	yamlPath := filepath.Join(dir, constants.ConfigFileYAML)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	return jsonPath
}

func getConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\fileref
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, constants.ApplicationName)

	case "darwin":
		// macOS: ~/Library/Application Support/fileref
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", constants.ApplicationName)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/fileref or ~/.config/fileref
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		return filepath.Join(xdgConfigHome, constants.ApplicationName)
	}
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	// Merge Logging config
	if fileConfig.Logging.Level != "" {
		defaultConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" {
		defaultConfig.Logging.Format = fileConfig.Logging.Format
	}

	// Merge SMB config
	// Note: for bool values, we can't distinguish between false and unset, so we always use file value
	defaultConfig.SMB.UseKeyring = fileConfig.SMB.UseKeyring
	defaultConfig.SMB.RememberCredentials = fileConfig.SMB.RememberCredentials
	if fileConfig.SMB.DialTimeout != "" {
		defaultConfig.SMB.DialTimeout = fileConfig.SMB.DialTimeout
	}

	// Merge Types config
	defaultConfig.Types.DisableSniffing = fileConfig.Types.DisableSniffing
	if fileConfig.Types.Declarations != nil {
		defaultConfig.Types.Declarations = fileConfig.Types.Declarations
	}
}
