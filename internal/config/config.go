// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"github.com/woozymasta/geocoord/internal/device"
	"github.com/woozymasta/geocoord/internal/geo"

	"gopkg.in/yaml.v3"
)

// DefaultExportPath is where device GeoJSON is written when not configured.
const DefaultExportPath = "devices.geojson"

// Config represents the root configuration file structure.
type Config struct {
	// Scene maps device positions to geographic coordinates; the reference
	// scene frame is used when omitted.
	Scene   *geo.SceneFrame `yaml:"scene,omitempty" json:"scene,omitempty"`
	Export  Export          `yaml:"export,omitempty" json:"export,omitempty"`
	Devices []device.Device `yaml:"devices" json:"devices"`
}

// Export configures the GeoJSON export.
type Export struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// IncludeInactive also exports devices marked inactive.
	IncludeInactive bool `yaml:"include_inactive,omitempty" json:"include_inactive,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene frame: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with the reference scene and no devices.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Frame returns the configured scene frame.
func (c *Config) Frame() geo.SceneFrame {
	if c.Scene == nil {
		return geo.DefaultSceneFrame()
	}
	return *c.Scene
}

func (c *Config) applyDefaults() {
	if c.Scene == nil {
		frame := geo.DefaultSceneFrame()
		c.Scene = &frame
	}
	if c.Export.Path == "" {
		c.Export.Path = DefaultExportPath
	}
}
