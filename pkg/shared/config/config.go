package config

import (
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultConfigFile is used when neither a flag nor TESTFORGE_CONFIG names a config file.
	DefaultConfigFile = "config.yml"
	// ConfigFileEnv names the environment variable holding the config file path.
	ConfigFileEnv = "TESTFORGE_CONFIG"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Assistant  Assistant  `yaml:"assistant"`
	Scan       Scan       `yaml:"scan"`
	Stubs      Stubs      `yaml:"stubs"`
	Report     Report     `yaml:"report"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Assistant holds the explicit settings for the remote completion provider.
// Empty fields fall through to the environment and then to built-in defaults.
type Assistant struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	CacheSize int    `yaml:"cache_size"`
}

type Scan struct {
	Level     string `yaml:"level"`
	RulesFile string `yaml:"rules_file"`
}

type Stubs struct {
	Dialect  string `yaml:"dialect"`
	Coverage string `yaml:"coverage"`
}

type Report struct {
	Environment string `yaml:"environment"`
	Seed        *int64 `yaml:"seed"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "INFO")
	cfg.Scan.Level = SetThen(cfg.Scan.Level, "comprehensive")
	cfg.Stubs.Dialect = SetThen(cfg.Stubs.Dialect, "jest")
	cfg.Stubs.Coverage = SetThen(cfg.Stubs.Coverage, "high")
	cfg.Report.Environment = SetThen(cfg.Report.Environment, "node")
	cfg.Assistant.CacheSize = SetThen(cfg.Assistant.CacheSize, 64)
}

// ResolveConfigPath picks the config file: explicit flag, then TESTFORGE_CONFIG, then config.yml.
func ResolveConfigPath(flagValue string) (string, bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv(ConfigFileEnv); env != "" {
		return env, true
	}
	return DefaultConfigFile, false
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	// An empty file decodes to io.EOF and leaves the defaults in place.
	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil && err != io.EOF {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config at configPath. A missing file is only an
// error when the path was requested explicitly; otherwise defaults are returned.
func LoadConfig(configPath string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if err := LoadYAML(configPath, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}
