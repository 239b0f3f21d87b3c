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
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// cpuTimes is swappable for testing.
var cpuTimes = cpu.TimesWithContext

// CPUCollector collects per-core CPU utilization metrics.
type CPUCollector struct {
	prevStats []metrics.CPUTimeStats
	firstRun  bool
}

// NewCPUCollector creates a new CPU collector instance.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{
		firstRun: true,
	}
}

// Collect gathers current CPU metrics and calculates per-core utilization,
// one percentage per core in core order.
// The first call stores a baseline and returns zeros.
func (c *CPUCollector) Collect(ctx context.Context) ([]float64, error) {
	currentStats, err := c.getCPUTimeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU stats: %w", err)
	}

	// First run, or a core count change (CPU hotplug) - store baseline
	if c.firstRun || len(c.prevStats) != len(currentStats) {
		c.prevStats = currentStats
		c.firstRun = false
		return make([]float64, len(currentStats)), nil
	}

	load := make([]float64, len(currentStats))
	for i := range currentStats {
		load[i] = metrics.CalculateCPUUtilization(&c.prevStats[i], &currentStats[i])
	}

	// Update previous stats
	c.prevStats = currentStats

	return load, nil
}

// getCPUTimeStats retrieves per-core CPU time statistics from the system.
func (c *CPUCollector) getCPUTimeStats(ctx context.Context) ([]metrics.CPUTimeStats, error) {
	times, err := cpuTimes(ctx, true)
	if err != nil {
		return nil, err
	}

	if len(times) == 0 {
		return nil, fmt.Errorf("no CPU time stats available")
	}

	now := time.Now()
	stats := make([]metrics.CPUTimeStats, len(times))
	for i, t := range times {
		stats[i] = metrics.CPUTimeStats{
			User:      t.User,
			System:    t.System,
			Idle:      t.Idle,
			IOWait:    t.Iowait,
			Irq:       t.Irq,
			SoftIrq:   t.Softirq,
			Steal:     t.Steal,
			Guest:     t.Guest,
			GuestNice: t.GuestNice,
			Timestamp: now,
		}
	}

	return stats, nil
}

// Name returns the collector name for logging purposes.
func (c *CPUCollector) Name() string {
	return "CPU"
}
