package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeolus-osc/aeolus-go/pkg/bridge"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aeolus-osc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
port: 9000
aeolus: "128:0"
control_channel: 3
instruments: [aeolus, aeolus-ii]
advertise: true
name: Chapel
probe_backoff:
  initial: 500ms
  max: 10s
  multiplier: 1.5
`)

	cfg := defaultConfig()
	require.NoError(t, loadConfigFile(path, &cfg))

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "128:0", cfg.Aeolus)
	assert.Equal(t, 3, cfg.ControlChannel)
	assert.Equal(t, []string{"aeolus", "aeolus-ii"}, cfg.Instruments)
	assert.True(t, cfg.Advertise)
	assert.Equal(t, "Chapel", cfg.Name)
	assert.True(t, cfg.Probe, "unset keys keep their defaults")
	require.NotNil(t, cfg.ProbeBackoff)
	assert.Equal(t, 500*time.Millisecond, cfg.ProbeBackoff.Initial)
	assert.Equal(t, 10*time.Second, cfg.ProbeBackoff.Max)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))

	path := writeConfig(t, "port: [not a number\n")
	assert.Error(t, loadConfigFile(path, &cfg))
}

func TestMergeConfig(t *testing.T) {
	file := defaultConfig()
	file.Port = 9000
	file.ControlChannel = 3
	file.Name = "Chapel"

	flags := defaultConfig()
	flags.Port = 7000
	flags.ControlChannel = 5
	flags.Verbose = true
	flags.ConfigFile = "chapel.yaml"

	out := mergeConfig(file, flags, map[string]bool{"port": true, "v": true})

	assert.Equal(t, 7000, out.Port, "explicit flag wins")
	assert.True(t, out.Verbose)
	assert.Equal(t, 3, out.ControlChannel, "unset flag keeps file value")
	assert.Equal(t, "Chapel", out.Name)
	assert.Equal(t, "chapel.yaml", out.ConfigFile)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"endpoint", func(c *Config) { c.Aeolus = "128:0" }, false},
		{"bad endpoint", func(c *Config) { c.Aeolus = "aeolus" }, true},
		{"bad source", func(c *Config) { c.Source = "1:x" }, true},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"ephemeral port", func(c *Config) { c.Port = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(&cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBridgeConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Port = 9001
	cfg.Aeolus = "129:2"
	cfg.ControlChannel = 4
	cfg.Instruments = []string{"organ"}

	bc, err := bridgeConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, ":9001", bc.ListenAddress)
	assert.Equal(t, 4, bc.Channel)
	assert.True(t, bc.Probe)
	require.NotNil(t, bc.Destination)
	assert.Equal(t, seq.Endpoint{Client: 129, Port: 2}, *bc.Destination)
	assert.Equal(t, []string{"organ"}, bc.InstrumentNames)
	assert.Equal(t, bridge.DefaultConfig().ProbeBackoff, bc.ProbeBackoff)
}

func TestBridgeConfig_InvalidChannel(t *testing.T) {
	cfg := defaultConfig()
	cfg.ControlChannel = 17

	_, err := bridgeConfig(cfg)
	assert.ErrorIs(t, err, bridge.ErrInvalidConfig)
}

func TestSourceEndpoint(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, seq.Endpoint{}, sourceEndpoint(cfg))

	cfg.Source = "14:1"
	assert.Equal(t, seq.Endpoint{Client: 14, Port: 1}, sourceEndpoint(cfg))
}
