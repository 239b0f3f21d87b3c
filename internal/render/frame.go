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

package render

import (
	"fmt"
	"math"

	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// Display geometry.
const (
	Rows = 4
	Cols = 20
)

// HD44780 character codes for cells that need no CGRAM slot.
const (
	CharBlank  = 0x20
	CharFull   = 0xFF // Built-in all-dots-on glyph
	CharDegree = 0xDF
)

// Frame layout: three gauge rows and one text row.
//
//	Row 0: CPU core bars, 4 cells per core
//	Row 1: per-interface TX bars, 2 cells per interface, "tx" label
//	Row 2: per-interface RX bars, "rx" label, memory cell at column 19
//	Row 3: "cpu 40°C 123/456 mem"
const (
	rowCPU  = 0
	rowTx   = 1
	rowRx   = 2
	rowText = 3

	coreBarCells  = 4
	ifaceBarCells = 2
	colLabel      = 13
	colMem        = Cols - 1

	// MaxCores is how many 4-cell core bars fit on the CPU row.
	MaxCores = Cols / coreBarCells
	// MaxInterfaces is how many 2-cell bars fit before the tx/rx labels.
	MaxInterfaces = 6
)

// Frame is one 20x4 character grid ready for the display driver. Cell
// values below MaxGlyphs reference CGRAM slots; everything else is a
// literal controller character code. A frame is built fresh each tick and
// has no identity beyond a single render pass.
type Frame [Rows][Cols]byte

// Builder composes frames and their glyph tables from telemetry snapshots.
type Builder struct {
	enc        Encoder
	cores      int
	interfaces int
}

// NewBuilder validates the layout and returns a frame builder showing the
// given number of core bars and interface slots.
func NewBuilder(cores, interfaces int) (*Builder, error) {
	if cores < 0 || cores > MaxCores {
		return nil, fmt.Errorf("layout cannot hold %d core bars (max %d)", cores, MaxCores)
	}
	if interfaces < 0 || interfaces > MaxInterfaces {
		return nil, fmt.Errorf("layout cannot hold %d interface slots (max %d)", interfaces, MaxInterfaces)
	}
	return &Builder{
		enc:        NewEncoder(),
		cores:      cores,
		interfaces: interfaces,
	}, nil
}

// NewBuilderWithEncoder is NewBuilder with a custom gauge encoder.
func NewBuilderWithEncoder(cores, interfaces int, enc Encoder) (*Builder, error) {
	b, err := NewBuilder(cores, interfaces)
	if err != nil {
		return nil, err
	}
	b.enc = enc
	return b, nil
}

// Build composes the full frame plus the glyph table required to render
// it. Pure given valid input; the glyph table never exceeds MaxGlyphs
// slots.
func (b *Builder) Build(snap *metrics.Snapshot, peakMbps float64) (Frame, GlyphTable) {
	var f Frame
	for row := range f {
		for col := range f[row] {
			f[row][col] = CharBlank
		}
	}

	alloc := newGlyphAllocator(b.enc.Subdivisions)

	for core := 0; core < b.cores; core++ {
		load := 0.0
		if core < len(snap.CPULoad) {
			load = snap.CPULoad[core]
		}
		b.drawGauge(&f, alloc, rowCPU, core*coreBarCells, load, coreBarCells)
	}

	for slot := 0; slot < b.interfaces; slot++ {
		act := snap.Net[slot]
		b.drawGauge(&f, alloc, rowTx, slot*ifaceBarCells, act.TxPercent, ifaceBarCells)
		b.drawGauge(&f, alloc, rowRx, slot*ifaceBarCells, act.RxPercent, ifaceBarCells)
	}

	copy(f[rowTx][colLabel:], "tx")
	copy(f[rowRx][colLabel:], "rx")

	b.drawGauge(&f, alloc, rowRx, colMem, snap.MemUsedPercent, 1)

	b.writeTextRow(&f, snap, peakMbps)

	return f, alloc.table()
}

// drawGauge encodes one value into cells starting at (row, col).
func (b *Builder) drawGauge(f *Frame, alloc *glyphAllocator, row, col int, value float64, cells int) {
	for i, fill := range b.enc.Encode(value, cells) {
		f[row][col+i] = b.cellByte(alloc, fill)
	}
}

// cellByte maps a fill level to a controller character: literal blank and
// block for the extremes, a CGRAM slot reference for partial fills.
func (b *Builder) cellByte(alloc *glyphAllocator, fill CellFill) byte {
	sub := b.enc.Subdivisions
	if sub <= 0 {
		sub = Subdivisions
	}
	switch {
	case fill <= 0:
		return CharBlank
	case int(fill) >= sub:
		return CharFull
	default:
		return byte(alloc.slotFor(int(fill)))
	}
}

// writeTextRow formats the bottom row: temperature, current/peak
// throughput in integer mbps, and the label for the memory gauge above.
func (b *Builder) writeTextRow(f *Frame, snap *metrics.Snapshot, peakMbps float64) {
	temp := snap.CPUTempCelsius
	if temp < 0 {
		temp = 0
	}
	if temp > 99 {
		temp = 99
	}

	// The tracker guarantees peak >= the instantaneous sample, so the
	// rounded pair keeps that ordering too.
	current := int(math.Round(snap.PeakSampleMbps))
	peak := int(math.Round(peakMbps))

	text := fmt.Sprintf("cpu %2d\xdfC %3d/%3d mem", temp, current, peak)
	for col := 0; col < Cols && col < len(text); col++ {
		f[rowText][col] = text[col]
	}
}
