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

package collector

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// sensorsTemperatures is swappable for testing.
var sensorsTemperatures = host.SensorsTemperaturesWithContext

// tempKeyPreference ranks sensor keys by how likely they are to represent
// the CPU package temperature. Matched as substrings, in order.
var tempKeyPreference = []string{"package", "tctl", "cpu", "core"}

// TempCollector collects the CPU temperature from system thermal sensors.
type TempCollector struct{}

// NewTempCollector creates a new temperature collector instance.
func NewTempCollector() *TempCollector {
	return &TempCollector{}
}

// Collect returns the CPU temperature in whole degrees Celsius.
// It prefers package-level sensors and falls back to the first sensor
// reporting a plausible value.
func (c *TempCollector) Collect(ctx context.Context) (int, error) {
	sensors, err := sensorsTemperatures(ctx)
	if err != nil && len(sensors) == 0 {
		return 0, fmt.Errorf("failed to get temperature sensors: %w", err)
	}

	for _, key := range tempKeyPreference {
		for _, s := range sensors {
			if strings.Contains(strings.ToLower(s.SensorKey), key) && plausibleTemp(s.Temperature) {
				return int(math.Round(s.Temperature)), nil
			}
		}
	}

	for _, s := range sensors {
		if plausibleTemp(s.Temperature) {
			return int(math.Round(s.Temperature)), nil
		}
	}

	return 0, fmt.Errorf("no usable temperature sensor found")
}

// plausibleTemp filters out sensors that report zero or nonsense values.
func plausibleTemp(t float64) bool {
	return t > 0 && t < 150
}

// Name returns the collector name for logging purposes.
func (c *TempCollector) Name() string {
	return "Temperature"
}
