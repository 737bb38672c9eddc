package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults applied when a flag is not given.
type Config struct {
	KeywordsPath string `yaml:"keywords_path,omitempty"`
	OutputDir    string `yaml:"output_dir,omitempty"`
	IPv4         bool   `yaml:"ipv4"`
	Detailed     bool   `yaml:"detailed"`
	Summary      bool   `yaml:"summary"`
}

const (
	EnvConfigDir = "OBFUSCATE_LOGS_CONFIG_DIR"
	EnvKeywords  = "OBFUSCATE_LOGS_KEYWORDS"
	EnvOutput    = "OBFUSCATE_LOGS_OUTPUT"
	EnvIPv4      = "OBFUSCATE_LOGS_IPV4"
	EnvDetailed  = "OBFUSCATE_LOGS_DETAILED"
	EnvSummary   = "OBFUSCATE_LOGS_SUMMARY"
)

// Dir returns the configuration directory without creating it.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "obfuscate-logs"), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile reads only the config file. A missing file yields zero values.
func LoadFile() (Config, error) {
	var cfg Config

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig merges the config file with the environment. Variables from a
// .env file in the config directory are loaded first but never override
// the real environment; environment values win over the file. Unreadable
// sources are skipped.
func LoadConfig() Config {
	cfg, _ := LoadFile()

	if dir, err := Dir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	if v := os.Getenv(EnvKeywords); v != "" {
		cfg.KeywordsPath = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.OutputDir = v
	}
	if b, ok := envBool(EnvIPv4); ok {
		cfg.IPv4 = b
	}
	if b, ok := envBool(EnvDetailed); ok {
		cfg.Detailed = b
	}
	if b, ok := envBool(EnvSummary); ok {
		cfg.Summary = b
	}

	return cfg
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
