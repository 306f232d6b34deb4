package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath  = "MONKEY_CONFIG"
	DefaultFile    = ".monkey.yaml"
	DefaultPrompt  = ">> "
	DefaultHistory = ".monkey_history"
)

// Config holds interpreter and REPL settings. Zero values in a file fall
// back to Default.
type Config struct {
	Prompt      string `yaml:"prompt"`
	Color       bool   `yaml:"color"`
	HistoryFile string `yaml:"history_file"`
	LogLevel    int    `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	MaxDepth    int    `yaml:"max_depth"`
	ShowTokens  bool   `yaml:"show_tokens"`
}

func Default() *Config {
	cfg := &Config{
		Prompt: DefaultPrompt,
		Color:  true,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, DefaultHistory)
	}
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return cfg, nil
}

// Discover finds the config file: $MONKEY_CONFIG first, then
// ~/.monkey.yaml.
func Discover() (*Config, error) {
	return Load(Path())
}

func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFile)
}

// Validate checks ranges that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.LogLevel < 0 || c.LogLevel > 5 {
		return fmt.Errorf("log_level must be between 0 and 5, got %d", c.LogLevel)
	}
	return nil
}

// Write stores c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
