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

// Package monitor runs the sample-render tick loop that connects the
// collectors to the display.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/phuonguno98/lcdstat/internal/config"
	"github.com/phuonguno98/lcdstat/internal/display"
	"github.com/phuonguno98/lcdstat/internal/render"
	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// Sampler produces one telemetry snapshot per tick.
type Sampler interface {
	Sample(ctx context.Context) *metrics.Snapshot
}

// Loop drives the display at a fixed tick rate. Everything on the hot
// path - sampling, peak tracking, frame building, writing - runs on the
// loop goroutine, so none of it needs locking.
type Loop struct {
	interval time.Duration
	sampler  Sampler
	peaks    *metrics.PeakTracker
	builder  *render.Builder
	display  display.Display
	logger   *slog.Logger

	ticks   uint64
	skipped uint64
}

// New creates a render loop from the validated configuration.
func New(cfg *config.Config, sampler Sampler, builder *render.Builder, disp display.Display, logger *slog.Logger) *Loop {
	return &Loop{
		interval: cfg.Tick,
		sampler:  sampler,
		peaks:    metrics.NewPeakTracker(cfg.WindowSamples()),
		builder:  builder,
		display:  disp,
		logger:   logger,
	}
}

// Run initializes the display and renders until the context is cancelled.
// A failed tick is logged and skipped; the next tick starts from a clean
// frame, so the loop never needs to recover partial writes.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.display.Init(); err != nil {
		return err
	}

	// First frame immediately, not one interval late
	l.renderOnce(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Render loop stopped", "ticks", l.ticks, "skipped", l.skipped)
			return nil
		case <-ticker.C:
			l.renderOnce(ctx)
		}
	}
}

// renderOnce performs one full sample-build-write pass.
func (l *Loop) renderOnce(ctx context.Context) {
	l.ticks++

	snap := l.sampler.Sample(ctx)
	peak := l.peaks.Observe(snap.PeakSampleMbps)

	frame, glyphs := l.builder.Build(snap, peak)

	if err := l.display.LoadGlyphs(glyphs); err != nil {
		l.skipped++
		l.logger.Warn("Skipping tick: glyph load failed", "error", err)
		return
	}
	if err := l.display.WriteFrame(&frame); err != nil {
		l.skipped++
		l.logger.Warn("Skipping tick: frame write failed", "error", err)
		return
	}

	l.logger.Debug("Frame rendered",
		"tick", l.ticks,
		"peak_mbps", peak,
		"mem_percent", snap.MemUsedPercent,
		"cpu_temp", snap.CPUTempCelsius,
	)
}
