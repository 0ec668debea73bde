package cfg

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	defaultPort     = "8080"
	defaultMaxFiles = 20
	defaultTimezone = "UTC"
)

type rawCfg struct {
	// Application configuration
	ConfigFile   string `long:"config" env:"CONFIG_FILE" description:"Optional YAML config file with defaults"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	MaxFiles     int    `long:"max-files" env:"MAX_FILES" default:"20" description:"Maximum number of ICS files accepted per conversion run"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.ConfigFile != "" {
		if err := applyFile(&raw, raw.ConfigFile); err != nil {
			return nil, err
		}
	}

	cfg := &Cfg{
		Port:         raw.Port,
		MaxFiles:     raw.MaxFiles,
		APIAccessKey: raw.APIAccessKey,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// applyFile merges YAML file values under flag/env values: only settings
// still at their declared defaults are replaced.
func applyFile(raw *rawCfg, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file fileCfg
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if raw.Port == defaultPort && file.Port != "" {
		raw.Port = file.Port
	}
	if raw.MaxFiles == defaultMaxFiles && file.MaxFiles > 0 {
		raw.MaxFiles = file.MaxFiles
	}
	if raw.APIAccessKey == "" && file.APIAccessKey != "" {
		raw.APIAccessKey = file.APIAccessKey
	}
	if raw.Timezone == defaultTimezone && file.Timezone != "" {
		raw.Timezone = file.Timezone
	}
	if !raw.Debug && file.Debug {
		raw.Debug = true
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
