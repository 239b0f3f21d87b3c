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

// Package collector gathers host telemetry (CPU, memory, network,
// temperature) and assembles it into snapshots for rendering.
package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phuonguno98/lcdstat/internal/config"
	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// Manager coordinates all collectors and assembles snapshots.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	cpuCollector    *CPUCollector
	memoryCollector *MemoryCollector
	netCollector    *NetworkCollector
	tempCollector   *TempCollector
}

// NewManager creates a manager with collectors for every configured source.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:             cfg,
		logger:          logger,
		cpuCollector:    NewCPUCollector(),
		memoryCollector: NewMemoryCollector(),
		netCollector:    NewNetworkCollector(cfg.Interfaces),
		tempCollector:   NewTempCollector(),
	}
}

// Sample runs all collectors concurrently and assembles a snapshot.
// A failing collector is logged and leaves its field at the zero value;
// Sample never fails as a whole.
func (m *Manager) Sample(ctx context.Context) *metrics.Snapshot {
	snapshot := &metrics.Snapshot{
		Timestamp: time.Now(),
		Net:       make(map[int]metrics.NetActivity),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		load, err := m.cpuCollector.Collect(ctx)
		if err != nil {
			m.logger.Warn("collector failed", "collector", m.cpuCollector.Name(), "error", err)
			return
		}
		if m.cfg.Cores > 0 && len(load) > m.cfg.Cores {
			load = load[:m.cfg.Cores]
		}
		mu.Lock()
		snapshot.CPULoad = load
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		usedPercent, err := m.memoryCollector.Collect(ctx)
		if err != nil {
			m.logger.Warn("collector failed", "collector", m.memoryCollector.Name(), "error", err)
			return
		}
		mu.Lock()
		snapshot.MemUsedPercent = usedPercent
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		activity, err := m.netCollector.Collect(ctx)
		if err != nil {
			m.logger.Warn("collector failed", "collector", m.netCollector.Name(), "error", err)
			return
		}
		mu.Lock()
		snapshot.Net = activity
		snapshot.PeakSampleMbps = PeakSample(activity)
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		temp, err := m.tempCollector.Collect(ctx)
		if err != nil {
			m.logger.Debug("collector failed", "collector", m.tempCollector.Name(), "error", err)
			return
		}
		mu.Lock()
		snapshot.CPUTempCelsius = temp
		mu.Unlock()
	}()

	wg.Wait()

	return snapshot
}
