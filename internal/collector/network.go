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

	"github.com/shirou/gopsutil/v3/net"

	"github.com/phuonguno98/lcdstat/internal/config"
	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// netIOCounters is swappable for testing.
var netIOCounters = net.IOCountersWithContext

// NetworkCollector collects throughput for a fixed set of monitored
// interfaces and scales it against each interface's configured link rate.
type NetworkCollector struct {
	interfaces []config.InterfaceConfig
	prevStats  map[string]metrics.NetworkIOStats
	firstRun   bool
}

// NewNetworkCollector creates a collector for the given interfaces.
// Slot order follows the configuration order.
func NewNetworkCollector(interfaces []config.InterfaceConfig) *NetworkCollector {
	return &NetworkCollector{
		interfaces: interfaces,
		prevStats:  make(map[string]metrics.NetworkIOStats),
		firstRun:   true,
	}
}

// Collect gathers per-interface throughput keyed by configuration slot.
// Interfaces absent from the system are reported as zero activity.
// The first call stores a baseline and returns zeros.
func (c *NetworkCollector) Collect(ctx context.Context) (map[int]metrics.NetActivity, error) {
	currentStats, err := c.getNetworkIOStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network stats: %w", err)
	}

	activity := make(map[int]metrics.NetActivity, len(c.interfaces))

	for slot, iface := range c.interfaces {
		activity[slot] = metrics.NetActivity{}

		current, ok := currentStats[iface.Name]
		if !ok {
			continue
		}

		prev, havePrev := c.prevStats[iface.Name]
		c.prevStats[iface.Name] = current

		if c.firstRun || !havePrev {
			continue
		}

		txMbps, rxMbps := metrics.CalculateInterfaceMbps(prev, current)
		activity[slot] = metrics.NetActivity{
			TxMbps:    txMbps,
			RxMbps:    rxMbps,
			TxPercent: metrics.ClampPercent(txMbps / iface.MaxMbps * 100),
			RxPercent: metrics.ClampPercent(rxMbps / iface.MaxMbps * 100),
		}
	}

	c.firstRun = false

	return activity, nil
}

// PeakSample returns the single value fed to the sliding-window peak
// tracker: the highest instantaneous throughput in either direction
// across all monitored interfaces.
func PeakSample(activity map[int]metrics.NetActivity) float64 {
	var peak float64
	for _, a := range activity {
		if a.TxMbps > peak {
			peak = a.TxMbps
		}
		if a.RxMbps > peak {
			peak = a.RxMbps
		}
	}
	return peak
}

// getNetworkIOStats retrieves per-interface IO counters from the system.
func (c *NetworkCollector) getNetworkIOStats(ctx context.Context) (map[string]metrics.NetworkIOStats, error) {
	counters, err := netIOCounters(ctx, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := make(map[string]metrics.NetworkIOStats, len(counters))
	for _, counter := range counters {
		stats[counter.Name] = metrics.NetworkIOStats{
			BytesSent: counter.BytesSent,
			BytesRecv: counter.BytesRecv,
			Timestamp: now,
		}
	}

	return stats, nil
}

// Name returns the collector name for logging purposes.
func (c *NetworkCollector) Name() string {
	return "Network"
}
