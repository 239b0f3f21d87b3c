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

package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuonguno98/lcdstat/internal/config"
	"github.com/phuonguno98/lcdstat/internal/display"
	"github.com/phuonguno98/lcdstat/internal/render"
	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

type fakeSampler struct {
	snaps int
	peak  float64
}

func (f *fakeSampler) Sample(ctx context.Context) *metrics.Snapshot {
	f.snaps++
	return &metrics.Snapshot{
		Timestamp:      time.Now(),
		CPULoad:        []float64{25.0},
		Net:            map[int]metrics.NetActivity{0: {TxMbps: f.peak, TxPercent: 10}},
		MemUsedPercent: 40.0,
		CPUTempCelsius: 45,
		PeakSampleMbps: f.peak,
	}
}

type fakeDisplay struct {
	inits      int
	glyphLoads int
	frames     int
	closes     int

	failWriteFrom int // fail WriteFrame calls numbered >= this, 0 = never
	initErr       error
}

func (d *fakeDisplay) Init() error {
	d.inits++
	return d.initErr
}

func (d *fakeDisplay) LoadGlyphs(table render.GlyphTable) error {
	d.glyphLoads++
	return nil
}

func (d *fakeDisplay) WriteFrame(frame *render.Frame) error {
	d.frames++
	if d.failWriteFrom > 0 && d.frames >= d.failWriteFrom {
		return &display.TransportError{Op: "write", Err: errors.New("bus gone")}
	}
	return nil
}

func (d *fakeDisplay) Close() error {
	d.closes++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(tick time.Duration) *config.Config {
	cfg := config.New()
	cfg.Tick = tick
	cfg.PeakWindow = 10 * tick
	return cfg
}

func TestLoopRendersImmediatelyAndOnTicks(t *testing.T) {
	builder, err := render.NewBuilder(1, 1)
	require.NoError(t, err)

	sampler := &fakeSampler{peak: 42.0}
	disp := &fakeDisplay{}
	loop := New(testConfig(10*time.Millisecond), sampler, builder, disp, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	require.NoError(t, loop.Run(ctx))

	assert.Equal(t, 1, disp.inits)
	// One immediate frame plus at least a couple of ticks
	assert.GreaterOrEqual(t, disp.frames, 3)
	assert.Equal(t, disp.frames, disp.glyphLoads, "every frame needs its glyph table loaded first")
	assert.Equal(t, disp.frames, sampler.snaps)
}

func TestLoopSurvivesWriteErrors(t *testing.T) {
	builder, err := render.NewBuilder(1, 1)
	require.NoError(t, err)

	sampler := &fakeSampler{}
	disp := &fakeDisplay{failWriteFrom: 2}
	loop := New(testConfig(10*time.Millisecond), sampler, builder, disp, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	require.NoError(t, loop.Run(ctx))

	// Failing writes never stop the loop; it keeps attempting every tick.
	assert.GreaterOrEqual(t, disp.frames, 3)
	assert.Equal(t, uint64(disp.frames-1), loop.skipped)
}

func TestLoopReturnsInitError(t *testing.T) {
	builder, err := render.NewBuilder(1, 1)
	require.NoError(t, err)

	disp := &fakeDisplay{initErr: errors.New("no ack from expander")}
	loop := New(testConfig(10*time.Millisecond), &fakeSampler{}, builder, disp, testLogger())

	err = loop.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, disp.frames)
}

func TestLoopFeedsPeakTracker(t *testing.T) {
	builder, err := render.NewBuilder(1, 1)
	require.NoError(t, err)

	sampler := &fakeSampler{peak: 80.0}
	disp := &fakeDisplay{}
	loop := New(testConfig(10*time.Millisecond), sampler, builder, disp, testLogger())

	loop.renderOnce(context.Background())
	loop.renderOnce(context.Background())

	assert.Equal(t, 2, loop.peaks.Count())
	assert.Equal(t, 10, loop.peaks.Capacity())
}
