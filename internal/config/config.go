// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/relabs-tech/cursor_stabilizer/internal/motion"
)

// Config holds all application configuration values.
type Config struct {
	Detection DetectionConfig `toml:"detection"`
	Smoothing SmoothingConfig `toml:"smoothing"`
	Serial    SerialConfig    `toml:"serial"`
	MQTT      MQTTConfig      `toml:"mqtt"`
	Web       WebConfig       `toml:"web"`
	Display   DisplayConfig   `toml:"display"`
}

// DetectionConfig tunes the tremor classifier.
type DetectionConfig struct {
	SampleWindow             int     `toml:"sample_window"`
	ShakeThreshold           float64 `toml:"shake_threshold"`
	FrequencyWindow          int     `toml:"frequency_window"`
	MinTremorFrequency       float64 `toml:"min_tremor_frequency"`
	MaxTremorFrequency       float64 `toml:"max_tremor_frequency"`
	DirectionChangeThreshold float64 `toml:"direction_change_threshold"`
	StdDevThreshold          float64 `toml:"std_dev_threshold"`
	JitterThreshold          float64 `toml:"jitter_threshold"`
	Profile                  string  `toml:"profile"` // "enhanced" or "basic"
}

// SmoothingConfig tunes the stabilization filter.
type SmoothingConfig struct {
	Factor   float64 `toml:"factor"`
	Adaptive bool    `toml:"adaptive"`
}

// SerialConfig locates the hardware interceptor.
type SerialConfig struct {
	Port string `toml:"port"`
	Baud uint   `toml:"baud"`
}

// MQTTConfig controls status publishing and remote commands.
type MQTTConfig struct {
	Enabled          bool   `toml:"enabled"`
	Broker           string `toml:"broker"`
	ClientID         string `toml:"client_id"`
	TopicStatus      string `toml:"topic_status"`
	TopicCommand     string `toml:"topic_command"`
	StatusIntervalMS int    `toml:"status_interval_ms"`
}

// WebConfig controls the status web server.
type WebConfig struct {
	Port      int    `toml:"port"`
	StaticDir string `toml:"static_dir"`
}

// DisplayConfig controls the optional SSD1306 status panel.
type DisplayConfig struct {
	I2CAddr          int `toml:"i2c_addr"`
	UpdateIntervalMS int `toml:"update_interval_ms"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			SampleWindow:             25,
			ShakeThreshold:           1.7,
			FrequencyWindow:          15,
			MinTremorFrequency:       3.0,
			MaxTremorFrequency:       12.0,
			DirectionChangeThreshold: 0.4,
			StdDevThreshold:          0.75,
			JitterThreshold:          2.0,
			Profile:                  motion.ProfileEnhanced,
		},
		Smoothing: SmoothingConfig{
			Factor:   0.4,
			Adaptive: true,
		},
		Serial: SerialConfig{
			Port: "/dev/ttyUSB0",
			Baud: 115200,
		},
		MQTT: MQTTConfig{
			Enabled:          false,
			Broker:           "tcp://localhost:1883",
			ClientID:         "cursor-stabilizer",
			TopicStatus:      "stabilizer/status",
			TopicCommand:     "stabilizer/cmd",
			StatusIntervalMS: 250,
		},
		Web: WebConfig{
			Port:      8080,
			StaticDir: "web",
		},
		Display: DisplayConfig{
			I2CAddr:          0x3C,
			UpdateIntervalMS: 500,
		},
	}
}

// Load reads the configuration file, creating it with defaults when missing.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(configPath, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating parent directories.
func Save(configPath string, cfg *Config) error {
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	d := &c.Detection
	if d.SampleWindow < 2 {
		return fmt.Errorf("detection.sample_window must be at least 2, got %d", d.SampleWindow)
	}
	if d.ShakeThreshold <= 0 {
		return fmt.Errorf("detection.shake_threshold must be positive, got %g", d.ShakeThreshold)
	}
	if d.MinTremorFrequency <= 0 || d.MaxTremorFrequency <= d.MinTremorFrequency {
		return fmt.Errorf("detection frequency band %g-%g Hz is invalid", d.MinTremorFrequency, d.MaxTremorFrequency)
	}
	if d.Profile != motion.ProfileEnhanced && d.Profile != motion.ProfileBasic {
		return fmt.Errorf("detection.profile must be %q or %q, got %q", motion.ProfileEnhanced, motion.ProfileBasic, d.Profile)
	}
	if c.Smoothing.Factor <= 0 || c.Smoothing.Factor > 1 {
		return fmt.Errorf("smoothing.factor must be in (0,1], got %g", c.Smoothing.Factor)
	}
	if c.Serial.Baud == 0 {
		return fmt.Errorf("serial.baud is required")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
		}
		if c.MQTT.StatusIntervalMS <= 0 {
			return fmt.Errorf("mqtt.status_interval_ms must be positive, got %d", c.MQTT.StatusIntervalMS)
		}
	}
	return nil
}

// Params converts the detection and smoothing sections into controller
// parameters.
func (c *Config) Params() motion.Params {
	return motion.Params{
		WindowSize: c.Detection.SampleWindow,
		Profile:    c.Detection.Profile,
		Thresholds: motion.Thresholds{
			ShakeThreshold:           c.Detection.ShakeThreshold,
			DirectionChangeThreshold: c.Detection.DirectionChangeThreshold,
			MinFrequency:             c.Detection.MinTremorFrequency,
			MaxFrequency:             c.Detection.MaxTremorFrequency,
			FrequencyWindow:          c.Detection.FrequencyWindow,
			StdDevThreshold:          c.Detection.StdDevThreshold,
			JitterThreshold:          c.Detection.JitterThreshold,
		},
		SmoothingFactor:   c.Smoothing.Factor,
		AdaptiveSmoothing: c.Smoothing.Adaptive,
	}
}
