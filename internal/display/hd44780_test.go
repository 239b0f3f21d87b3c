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

package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuonguno98/lcdstat/internal/render"
)

// traceTransport records every expander byte, optionally failing after a
// set number of writes.
type traceTransport struct {
	trace     []byte
	failAfter int // -1 = never fail
}

func newTrace() *traceTransport {
	return &traceTransport{failAfter: -1}
}

func (t *traceTransport) Write(p []byte) error {
	if t.failAfter >= 0 && len(t.trace) >= t.failAfter {
		return errors.New("bus gone")
	}
	t.trace = append(t.trace, p...)
	return nil
}

func readyDevice(t *testing.T, backlight bool) (*Device, *traceTransport) {
	t.Helper()
	bus := newTrace()
	d := NewDevice(bus, backlight)
	require.NoError(t, d.Init())
	bus.trace = nil // drop the init sequence, tests inspect what follows
	return d, bus
}

func TestInitSequence(t *testing.T) {
	bus := newTrace()
	d := NewDevice(bus, true)
	require.NoError(t, d.Init())

	// The first strobe carries the 8-bit function-set knock with the
	// backlight already held high.
	require.NotEmpty(t, bus.trace)
	assert.EqualValues(t, 0x30|pinBacklight|pinEnable, bus.trace[0])
	assert.EqualValues(t, 0x30|pinBacklight, bus.trace[1])

	// Idempotent: a second Init writes nothing.
	n := len(bus.trace)
	require.NoError(t, d.Init())
	assert.Len(t, bus.trace, n)
}

func TestWriteByteNibbleDiscipline(t *testing.T) {
	d, bus := readyDevice(t, true)

	require.NoError(t, d.writeData(0xA7))

	// One byte = two nibbles = four expander writes: each nibble appears
	// once with enable high and once with enable low.
	require.Len(t, bus.trace, 4)
	hi := byte(0xA0 | pinRS | pinBacklight)
	lo := byte(0x70 | pinRS | pinBacklight)
	assert.Equal(t, []byte{hi | pinEnable, hi, lo | pinEnable, lo}, bus.trace)

	// Backlight stays asserted on every write, RW stays low everywhere.
	for i, b := range bus.trace {
		assert.NotZero(t, b&pinBacklight, "write %d dropped the backlight", i)
		assert.Zero(t, b&pinRW, "write %d drove RW high", i)
	}
}

func TestBacklightOff(t *testing.T) {
	d, bus := readyDevice(t, false)

	require.NoError(t, d.command(cmdClear))
	for i, b := range bus.trace {
		assert.Zero(t, b&pinBacklight, "write %d raised the backlight", i)
	}
}

func TestWriteFrameRowAddressing(t *testing.T) {
	d, bus := readyDevice(t, true)

	var frame render.Frame
	for row := range frame {
		for col := range frame[row] {
			frame[row][col] = render.CharBlank
		}
	}
	require.NoError(t, d.WriteFrame(&frame))

	// 4 rows x (1 address command + 20 data bytes), 4 expander writes per
	// byte.
	assert.Len(t, bus.trace, 4*(1+render.Cols)*4)

	// Each row starts with its DDRAM base address command; rows 1 and 3
	// are not contiguous with their predecessors.
	rowStride := (1 + render.Cols) * 4
	for row, base := range rowAddress {
		hi := bus.trace[row*rowStride+1] // enable already dropped
		lo := bus.trace[row*rowStride+3]
		assert.EqualValues(t, cmdSetDDRAM|base, hi&0xF0|(lo>>4), "row %d base address", row)
		assert.Zero(t, hi&pinRS, "row %d address must be a command", row)
	}
}

func TestLoadGlyphsResetsToDDRAM(t *testing.T) {
	d, bus := readyDevice(t, true)

	table := render.GlyphTable{
		render.PartialGlyph(1, 5),
		render.PartialGlyph(3, 5),
	}
	require.NoError(t, d.LoadGlyphs(table))

	// Per slot: 1 CGRAM address command + 8 data bytes; then the final
	// DDRAM reset command.
	assert.Len(t, bus.trace, (2*9+1)*4)

	// The trace must end with the set-DDRAM command, or the next frame
	// write would land in character memory.
	tail := bus.trace[len(bus.trace)-4:]
	hi, lo := tail[1], tail[3]
	assert.EqualValues(t, cmdSetDDRAM, hi&0xF0|(lo>>4))
	assert.Zero(t, hi&pinRS)

	// Glyph rows are sent as data bytes (RS high).
	assert.NotZero(t, bus.trace[4*1+1]&pinRS, "bitmap rows must be data writes")
}

func TestOperationsRequireInit(t *testing.T) {
	d := NewDevice(newTrace(), true)

	var frame render.Frame
	assert.ErrorIs(t, d.WriteFrame(&frame), ErrNotReady)
	assert.ErrorIs(t, d.LoadGlyphs(render.GlyphTable{}), ErrNotReady)
}

func TestTransportErrorSurfaced(t *testing.T) {
	d, bus := readyDevice(t, true)
	bus.failAfter = 2

	var frame render.Frame
	err := d.WriteFrame(&frame)
	require.Error(t, err)

	var terr *TransportError
	assert.ErrorAs(t, err, &terr, "bus failures must surface as TransportError")
}

func TestCloseDropsBacklight(t *testing.T) {
	d, bus := readyDevice(t, true)

	require.NoError(t, d.Close())
	assert.EqualValues(t, 0, bus.trace[len(bus.trace)-1], "Close must release every expander line")

	// Frame writes after Close are rejected until Init runs again.
	var frame render.Frame
	assert.ErrorIs(t, d.WriteFrame(&frame), ErrNotReady)
}
