package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aeolus-osc/aeolus-go/pkg/bridge"
	"github.com/aeolus-osc/aeolus-go/pkg/connection"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// Config holds the command configuration. Field names double as YAML keys
// of the -config file.
type Config struct {
	Port           int      `yaml:"port"`
	Aeolus         string   `yaml:"aeolus"`
	Source         string   `yaml:"source"`
	ControlChannel int      `yaml:"control_channel"`
	Instruments    []string `yaml:"instruments"`
	Verbose        bool     `yaml:"verbose"`
	ProtocolLog    string   `yaml:"protocol_log"`
	Advertise      bool     `yaml:"advertise"`
	Name           string   `yaml:"name"`
	Interface      string   `yaml:"interface"`
	Interactive    bool     `yaml:"interactive"`
	Probe          bool     `yaml:"probe"`

	ProbeBackoff *connection.BackoffConfig `yaml:"probe_backoff"`

	ConfigFile string `yaml:"-"`
}

// defaultConfig returns the flag defaults.
func defaultConfig() Config {
	return Config{
		Port:           8080,
		ControlChannel: 1,
		Name:           "Aeolus OSC",
		Probe:          true,
	}
}

// loadConfigFile reads a YAML config file on top of cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// mergeConfig returns file with the explicitly set flags of flags applied.
func mergeConfig(file, flags Config, set map[string]bool) Config {
	out := file
	if set["port"] {
		out.Port = flags.Port
	}
	if set["aeolus"] {
		out.Aeolus = flags.Aeolus
	}
	if set["source"] {
		out.Source = flags.Source
	}
	if set["control-channel"] {
		out.ControlChannel = flags.ControlChannel
	}
	if set["v"] {
		out.Verbose = flags.Verbose
	}
	if set["protocol-log"] {
		out.ProtocolLog = flags.ProtocolLog
	}
	if set["advertise"] {
		out.Advertise = flags.Advertise
	}
	if set["name"] {
		out.Name = flags.Name
	}
	if set["interface"] {
		out.Interface = flags.Interface
	}
	if set["interactive"] {
		out.Interactive = flags.Interactive
	}
	if set["probe"] {
		out.Probe = flags.Probe
	}
	out.ConfigFile = flags.ConfigFile
	return out
}

func validateConfig(cfg Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be 0-65535, got %d", cfg.Port)
	}
	if cfg.Aeolus != "" {
		if _, err := seq.ParseEndpoint(cfg.Aeolus); err != nil {
			return fmt.Errorf("-aeolus: %w", err)
		}
	}
	if cfg.Source != "" {
		if _, err := seq.ParseEndpoint(cfg.Source); err != nil {
			return fmt.Errorf("-source: %w", err)
		}
	}
	return nil
}

// bridgeConfig translates the command configuration.
func bridgeConfig(cfg Config) (bridge.Config, error) {
	bc := bridge.DefaultConfig()
	bc.ListenAddress = fmt.Sprintf(":%d", cfg.Port)
	bc.Channel = cfg.ControlChannel
	bc.Probe = cfg.Probe

	if cfg.Aeolus != "" {
		ep, err := seq.ParseEndpoint(cfg.Aeolus)
		if err != nil {
			return bridge.Config{}, err
		}
		bc.Destination = &ep
	}
	if len(cfg.Instruments) > 0 {
		bc.InstrumentNames = cfg.Instruments
	}
	if cfg.ProbeBackoff != nil {
		bc.ProbeBackoff = *cfg.ProbeBackoff
	}

	if err := bc.Validate(); err != nil {
		return bridge.Config{}, err
	}
	return bc, nil
}

// sourceEndpoint returns the configured source, 0:0 when unset.
func sourceEndpoint(cfg Config) seq.Endpoint {
	if cfg.Source == "" {
		return seq.Endpoint{}
	}
	ep, _ := seq.ParseEndpoint(cfg.Source)
	return ep
}
