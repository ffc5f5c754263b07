package logger

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled *bool  `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
	FileCompress   bool   `yaml:"file_compress"`
}

// LoggingConfig wraps the Config for YAML parsing
type LoggingConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is present.
// The console only shows warnings so logs stay out of the way of play.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Level:          "WARNING",
		ConsoleEnabled: &enabled,
		ConsoleFormat:  "text",
		FilePath:       "logs/tenebrae.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file and applies
// environment variable overrides. A missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return config, fmt.Errorf("failed to read logging config: %w", err)
		default:
			var loaded LoggingConfig
			if err := yaml.Unmarshal(data, &loaded); err != nil {
				return config, fmt.Errorf("failed to parse logging config: %w", err)
			}
			config.merge(loaded.Logging)
		}
	}

	config.applyEnv()
	return config, nil
}

// Console reports whether console output is enabled
func (c Config) Console() bool {
	return c.ConsoleEnabled == nil || *c.ConsoleEnabled
}

func (c *Config) merge(other Config) {
	if other.Level != "" {
		c.Level = other.Level
	}
	if other.ConsoleEnabled != nil {
		c.ConsoleEnabled = other.ConsoleEnabled
	}
	if other.ConsoleFormat != "" {
		c.ConsoleFormat = other.ConsoleFormat
	}
	c.FileEnabled = other.FileEnabled
	if other.FilePath != "" {
		c.FilePath = other.FilePath
	}
	if other.FileFormat != "" {
		c.FileFormat = other.FileFormat
	}
	if other.FileMaxSizeMB > 0 {
		c.FileMaxSizeMB = other.FileMaxSizeMB
	}
	if other.FileMaxBackups > 0 {
		c.FileMaxBackups = other.FileMaxBackups
	}
	if other.FileMaxAgeDays > 0 {
		c.FileMaxAgeDays = other.FileMaxAgeDays
	}
	c.FileCompress = other.FileCompress
}

func (c *Config) applyEnv() {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Level = logLevel
	}
	if consoleFormat := os.Getenv("LOG_CONSOLE_FORMAT"); consoleFormat != "" {
		c.ConsoleFormat = consoleFormat
	}
	if consoleEnabled := os.Getenv("LOG_CONSOLE_ENABLED"); consoleEnabled != "" {
		if enabled, err := strconv.ParseBool(consoleEnabled); err == nil {
			c.ConsoleEnabled = &enabled
		}
	}
	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			c.FileEnabled = enabled
		}
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		c.FilePath = filePath
	}
}
