// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SupportedBrowsers lists the browser identifiers the tool knows how to launch.
var SupportedBrowsers = []string{"chrome", "edge"}

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Wait    WaitConfig    `mapstructure:"wait" yaml:"wait"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SiteConfig describes the site under test.
type SiteConfig struct {
	// BaseURL is the entry point of the mobile site.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Title is the document title expected once the home page has loaded.
	Title string `mapstructure:"title" yaml:"title"`
	// Topic is the default search topic for the streaming check.
	Topic string `mapstructure:"topic" yaml:"topic"`
}

// BrowserConfig holds settings for the browser instance.
type BrowserConfig struct {
	// Name selects the browser to launch. Must be one of SupportedBrowsers.
	Name     string `mapstructure:"name" yaml:"name"`
	Headless bool   `mapstructure:"headless" yaml:"headless"`
	// Device selects the mobile device profile to emulate.
	Device string   `mapstructure:"device" yaml:"device"`
	Args   []string `mapstructure:"args" yaml:"args"`
}

// WaitConfig tunes the shared polling contract of the interaction layer.
type WaitConfig struct {
	// Timeout is the default deadline for every bounded wait.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// PollInterval is the fixed interval between condition checks.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	// NavigationTimeout bounds full page navigations, which are slower than
	// element-level waits.
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// ReportConfig controls where run artifacts are written.
type ReportConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	EvidenceDir string `mapstructure:"evidence_dir" yaml:"evidence_dir"`
}

// ErrUnsupportedBrowser is returned when the requested browser identifier is
// not in the supported set. It fails fast, before any browser is launched.
type ErrUnsupportedBrowser struct {
	Name string
}

func (e *ErrUnsupportedBrowser) Error() string {
	return fmt.Sprintf("browser %q not supported; supported browsers: %s",
		e.Name, strings.Join(SupportedBrowsers, ", "))
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment, if one exists. Viper picks the values up through AutomaticEnv.
func LoadDotEnv() {
	// A missing .env file is not an error.
	_ = godotenv.Load()
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "streamwatch")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Site --
	v.SetDefault("site.base_url", "https://m.twitch.tv/")
	v.SetDefault("site.title", "Twitch")
	v.SetDefault("site.topic", "StarCraft II")

	// -- Browser --
	v.SetDefault("browser.name", "chrome")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.device", "iPhone 8")

	// -- Wait --
	v.SetDefault("wait.timeout", 5*time.Second)
	v.SetDefault("wait.poll_interval", 250*time.Millisecond)
	v.SetDefault("wait.navigation_timeout", 60*time.Second)

	// -- Report --
	v.SetDefault("report.dir", "reports")
	v.SetDefault("report.evidence_dir", "reports/evidences")
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper builds and validates a configuration from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is a required configuration field")
	}
	if !IsSupportedBrowser(c.Browser.Name) {
		return &ErrUnsupportedBrowser{Name: c.Browser.Name}
	}
	if c.Wait.Timeout <= 0 {
		return fmt.Errorf("wait.timeout must be a positive duration")
	}
	if c.Wait.PollInterval <= 0 {
		return fmt.Errorf("wait.poll_interval must be a positive duration")
	}
	if c.Wait.PollInterval > c.Wait.Timeout {
		return fmt.Errorf("wait.poll_interval must not exceed wait.timeout")
	}
	return nil
}

// EnvKeyReplacer maps nested config keys to environment variable segments,
// so site.base_url becomes STREAMWATCH_SITE_BASE_URL.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// IsSupportedBrowser reports whether name is a known browser identifier.
// The comparison is case-insensitive so CLI input like "Chrome" still works.
func IsSupportedBrowser(name string) bool {
	for _, b := range SupportedBrowsers {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}
