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
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadFile reads configuration from a YAML file. Values absent from the
// file keep their defaults; the result still needs Validate.
//
// Example file:
//
//	bus: "1"
//	address: 0x27
//	tick: 1s
//	window: 60s
//	cores: 4
//	backlight: true
//	interfaces:
//	  - name: eth0
//	    max_mbps: 1000
//	  - name: wlan0
//	    max_mbps: 300
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := New()
	v.SetDefault("address", int(defaults.Address))
	v.SetDefault("backlight", defaults.Backlight)
	v.SetDefault("tick", defaults.Tick.String())
	v.SetDefault("window", defaults.PeakWindow.String())
	v.SetDefault("log_level", defaults.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Durations given as bare numbers mean seconds, matching the window
	// semantics in the docs.
	if cfg.Tick < time.Millisecond && cfg.Tick > 0 {
		cfg.Tick *= time.Second
	}
	if cfg.PeakWindow < time.Millisecond && cfg.PeakWindow > 0 {
		cfg.PeakWindow *= time.Second
	}

	return cfg, nil
}
