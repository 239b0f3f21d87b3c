/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phuonguno98/lcdstat/internal/render"
)

// InterfaceConfig describes one network interface slot on the display.
type InterfaceConfig struct {
	Name    string  `mapstructure:"name"`     // OS interface name, e.g. "eth0"
	MaxMbps float64 `mapstructure:"max_mbps"` // Link rate used to normalize throughput to percent
}

// Config represents application configuration. It is loaded once at startup
// and never mutated afterwards.
type Config struct {
	Bus        string        `mapstructure:"bus"`        // I2C bus name, empty = first available
	Address    uint16        `mapstructure:"address"`    // Expander address on the bus
	Mock       bool          `mapstructure:"mock"`       // Render to the console instead of hardware
	Backlight  bool          `mapstructure:"backlight"`  // Drive the backlight pin high
	Tick       time.Duration `mapstructure:"tick"`       // Interval between render ticks
	PeakWindow time.Duration `mapstructure:"window"`     // Sliding window for the network peak
	Cores      int           `mapstructure:"cores"`      // CPU cores to show (0 = autodetect)
	Interfaces []InterfaceConfig `mapstructure:"interfaces"`

	// Logging
	LogLevel string `mapstructure:"log_level"` // Log level: debug, info, warn, error
	LogFile  string `mapstructure:"log_file"`  // Log file path (empty = stdout)
}

// Default configuration values.
const (
	DefaultTick       = 1 * time.Second
	DefaultPeakWindow = 60 * time.Second
	DefaultAddress    = 0x27 // The usual PCF8574 backpack address
	DefaultLogLevel   = "info"
)

// New returns a configuration populated with defaults.
func New() *Config {
	return &Config{
		Address:    DefaultAddress,
		Backlight:  true,
		Tick:       DefaultTick,
		PeakWindow: DefaultPeakWindow,
		LogLevel:   DefaultLogLevel,
	}
}

// ParseInterfaces parses a comma-separated "name:max_mbps" list, e.g.
// "eth0:1000,wlan0:300".
func ParseInterfaces(s string) ([]InterfaceConfig, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	result := make([]InterfaceConfig, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}

		name, rate, found := strings.Cut(trimmed, ":")
		if !found {
			return nil, fmt.Errorf("invalid interface spec %q (want name:max_mbps)", trimmed)
		}

		maxMbps, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid link rate in %q: %w", trimmed, err)
		}

		result = append(result, InterfaceConfig{
			Name:    strings.TrimSpace(name),
			MaxMbps: maxMbps,
		})
	}

	return result, nil
}

// WindowSamples returns the peak ring capacity implied by the window
// duration and tick interval, one slot per tick.
func (c *Config) WindowSamples() int {
	if c.Tick <= 0 {
		return 1
	}
	samples := int(c.PeakWindow / c.Tick)
	if samples < 1 {
		samples = 1
	}
	return samples
}

// Validate checks if the configuration is valid. Layout problems are
// detected here, at startup, never per-tick.
func (c *Config) Validate() error {
	if c.Tick < 100*time.Millisecond {
		return errors.New("tick interval must be at least 100ms")
	}

	if c.Tick > 1*time.Hour {
		return errors.New("tick interval must not exceed 1 hour")
	}

	if c.PeakWindow < c.Tick {
		return errors.New("peak window must be at least one tick interval")
	}

	if c.Address > 0x7F {
		return fmt.Errorf("invalid I2C address 0x%X (must be a 7-bit address)", c.Address)
	}

	if c.Cores < 0 {
		return errors.New("core count must not be negative")
	}

	if c.Cores > render.MaxCores {
		return fmt.Errorf("too many cores configured: %d (the CPU row holds %d bars)", c.Cores, render.MaxCores)
	}

	if len(c.Interfaces) > render.MaxInterfaces {
		return fmt.Errorf("too many interfaces configured: %d (the frame layout holds %d)", len(c.Interfaces), render.MaxInterfaces)
	}

	seen := make(map[string]bool, len(c.Interfaces))
	for _, ifc := range c.Interfaces {
		if ifc.Name == "" {
			return errors.New("interface name cannot be empty")
		}
		if seen[ifc.Name] {
			return fmt.Errorf("duplicate interface %q", ifc.Name)
		}
		seen[ifc.Name] = true

		if ifc.MaxMbps <= 0 {
			return fmt.Errorf("interface %q: max link rate must be positive", ifc.Name)
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	names := make([]string, len(c.Interfaces))
	for i, ifc := range c.Interfaces {
		names[i] = ifc.Name
	}
	target := fmt.Sprintf("i2c bus=%q addr=0x%02X", c.Bus, c.Address)
	if c.Mock {
		target = "console mock"
	}
	return fmt.Sprintf("Config{%s, Tick=%v, Window=%v, Cores=%d, Interfaces=[%s]}",
		target, c.Tick, c.PeakWindow, c.Cores, strings.Join(names, ","))
}
