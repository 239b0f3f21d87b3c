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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

func TestNewBuilderLayoutLimits(t *testing.T) {
	_, err := NewBuilder(MaxCores+1, 0)
	assert.Error(t, err, "too many cores must be a startup error")

	_, err = NewBuilder(0, MaxInterfaces+1)
	assert.Error(t, err, "too many interfaces must be a startup error")

	_, err = NewBuilder(-1, 0)
	assert.Error(t, err)

	_, err = NewBuilder(MaxCores, MaxInterfaces)
	assert.NoError(t, err)
}

func TestBuildIdleSnapshot(t *testing.T) {
	b, err := NewBuilder(4, 2)
	require.NoError(t, err)

	snap := &metrics.Snapshot{
		CPULoad:        []float64{0, 0, 0, 0},
		Net:            map[int]metrics.NetActivity{},
		CPUTempCelsius: 40,
		MemUsedPercent: 10,
	}

	frame, table := b.Build(snap, 0)

	// All gauge regions empty: nothing but blanks and labels above the
	// text row.
	for col := 0; col < Cols; col++ {
		assert.EqualValues(t, CharBlank, frame[0][col], "CPU row col %d", col)
	}
	for col := 0; col < 12; col++ {
		assert.EqualValues(t, CharBlank, frame[1][col], "tx row col %d", col)
		assert.EqualValues(t, CharBlank, frame[2][col], "rx row col %d", col)
	}
	assert.Equal(t, byte('t'), frame[1][13])
	assert.Equal(t, byte('x'), frame[1][14])
	assert.Equal(t, byte('r'), frame[2][13])
	assert.Equal(t, byte('x'), frame[2][14])

	// mem=10% of one 5-unit cell rounds to Partial(1): slot 0.
	require.Len(t, table, 1)
	assert.EqualValues(t, 0, frame[2][Cols-1])

	assert.Equal(t, "cpu 40\xdfC   0/  0 mem", string(frame[3][:]))
}

func TestBuildBottomRowNumbers(t *testing.T) {
	b, err := NewBuilder(1, 1)
	require.NoError(t, err)

	snap := &metrics.Snapshot{
		CPULoad:        []float64{100},
		Net:            map[int]metrics.NetActivity{0: {TxPercent: 100, RxPercent: 100}},
		CPUTempCelsius: 57,
		MemUsedPercent: 100,
		PeakSampleMbps: 12.4,
	}

	frame, table := b.Build(snap, 940.2)

	assert.Equal(t, "cpu 57\xdfC  12/940 mem", string(frame[3][:]))
	// Everything is either full or empty, so no CGRAM slot is needed.
	assert.Empty(t, table)
	assert.EqualValues(t, CharFull, frame[0][0])
	assert.EqualValues(t, CharFull, frame[2][Cols-1])
}

func TestBuildTemperatureClamp(t *testing.T) {
	b, err := NewBuilder(0, 0)
	require.NoError(t, err)

	snap := &metrics.Snapshot{CPUTempCelsius: 120}
	frame, _ := b.Build(snap, 0)
	assert.Equal(t, "cpu 99\xdfC", string(frame[3][:8]))

	snap = &metrics.Snapshot{CPUTempCelsius: -3}
	frame, _ = b.Build(snap, 0)
	assert.Equal(t, "cpu  0\xdfC", string(frame[3][:8]))
}

func TestBuildGlyphDeduplication(t *testing.T) {
	b, err := NewBuilder(4, 2)
	require.NoError(t, err)

	// Many gauges landing on the same partial level must share one slot.
	snap := &metrics.Snapshot{
		CPULoad: []float64{30, 30, 30, 30},
		Net: map[int]metrics.NetActivity{
			0: {TxPercent: 30, RxPercent: 30},
			1: {TxPercent: 30, RxPercent: 30},
		},
	}

	frame, table := b.Build(snap, 0)

	// 30% of 4 cells = 6 units -> Full, Partial(1); 30% of 2 cells = 3
	// units -> Partial(3). Two distinct levels, two slots.
	require.Len(t, table, 2)
	assert.EqualValues(t, CharFull, frame[0][0])
	assert.EqualValues(t, 0, frame[0][1], "first partial level allocated slot 0")
	assert.EqualValues(t, 1, frame[1][0], "second partial level allocated slot 1")
	assert.Equal(t, frame[1][0], frame[2][0], "equal levels share a slot")
}

func TestBuildGlyphTableNeverExceedsCGRAM(t *testing.T) {
	// A 16-subdivision encoder can demand 15 distinct partial levels; the
	// table must still hold at most 8 and excess levels must collapse to
	// an already-allocated slot.
	b, err := NewBuilderWithEncoder(5, 5, Encoder{Subdivisions: 16})
	require.NoError(t, err)

	snap := &metrics.Snapshot{
		// Each value lands its boundary cell on a different partial level.
		CPULoad: []float64{1.6, 7.9, 14.1, 20.4, 26.6},
		Net: map[int]metrics.NetActivity{
			0: {TxPercent: 12.6, RxPercent: 15.7},
			1: {TxPercent: 18.8, RxPercent: 21.9},
			2: {TxPercent: 25.1, RxPercent: 28.2},
			3: {TxPercent: 31.3, RxPercent: 34.4},
			4: {TxPercent: 37.6, RxPercent: 40.7},
		},
		MemUsedPercent: 53,
	}

	frame, table := b.Build(snap, 0)

	assert.LessOrEqual(t, len(table), MaxGlyphs)

	// Every partial reference in the frame must point into the table.
	for row := 0; row < Rows-1; row++ {
		for col := 0; col < Cols; col++ {
			if ch := frame[row][col]; ch < MaxGlyphs {
				assert.Less(t, int(ch), len(table), "slot reference at (%d,%d) out of table", row, col)
			}
		}
	}

	// Deterministic: the same snapshot collapses the same way.
	frame2, table2 := b.Build(snap, 0)
	assert.Equal(t, frame, frame2)
	assert.Equal(t, table, table2)
}

func TestPartialGlyphBitmaps(t *testing.T) {
	// Level 2 of 5: two leftmost columns lit on all 8 rows.
	g := PartialGlyph(2, 5)
	for row := 0; row < 8; row++ {
		assert.EqualValues(t, 0b11000, g[row])
	}

	assert.Equal(t, Glyph{}, PartialGlyph(0, 5))

	full := PartialGlyph(5, 5)
	for row := 0; row < 8; row++ {
		assert.EqualValues(t, 0b11111, full[row])
	}

	// Coarser encoder resolutions scale onto the 5-dot width.
	half := PartialGlyph(8, 16)
	for row := 0; row < 8; row++ {
		assert.EqualValues(t, 0b11100, half[row], "8/16 lands on 3 of 5 columns")
	}
}
