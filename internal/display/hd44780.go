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
	"time"

	"github.com/phuonguno98/lcdstat/internal/render"
)

// Transport writes raw expander bytes to the display controller. The
// hardware implementation is an I2C device handle; tests substitute a
// recorder.
type Transport interface {
	Write(p []byte) error
}

// PCF8574 expander pin assignment, the usual I2C backpack wiring: control
// bits on P0..P3, the data nibble on P4..P7.
const (
	pinRS        = 0x01 // Register select: 0 command, 1 data
	pinRW        = 0x02 // Read/write, held low (write-only driver)
	pinEnable    = 0x04 // Enable strobe, latches a nibble on the falling edge
	pinBacklight = 0x08
)

// HD44780 instruction set.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x04
	cmdDisplayCtrl = 0x08
	cmdFunctionSet = 0x20
	cmdSetCGRAM    = 0x40
	cmdSetDDRAM    = 0x80

	entryIncrement  = 0x02 // Cursor moves right after each write
	displayOn       = 0x04
	functionTwoLine = 0x08 // 2-line mode, which 20x4 modules require
)

// Strobe timing. The controller needs the enable pulse held briefly and a
// settle period before the next nibble.
const (
	strobeHold  = 1 * time.Microsecond
	settleDelay = 50 * time.Microsecond
	clearDelay  = 2 * time.Millisecond
)

// rowAddress holds each row's DDRAM base. Rows 0 and 2 are contiguous in
// DDRAM, rows 1 and 3 are not.
var rowAddress = [render.Rows]byte{0x00, 0x40, 0x14, 0x54}

// ErrNotReady is returned when frame operations run before Init.
var ErrNotReady = errors.New("display not initialized")

// Device drives an HD44780 controller in 4-bit mode through an 8-bit
// expander. The transport handle is exclusively owned by the device for
// the process lifetime; no locking is needed because the render loop is
// the only writer.
type Device struct {
	bus       Transport
	backlight byte
	ready     bool
}

// NewDevice wraps a transport. Init must run before frames are written.
func NewDevice(bus Transport, backlight bool) *Device {
	d := &Device{bus: bus}
	if backlight {
		d.backlight = pinBacklight
	}
	return d
}

// Init runs the documented power-on sequence and leaves the controller in
// 4-bit, 2-line, 5x8 mode with the display on and the cursor hidden.
// Idempotent: a second call on a ready device is a no-op.
func (d *Device) Init() error {
	if d.ready {
		return nil
	}

	// Allow for controller power-on reset.
	time.Sleep(50 * time.Millisecond)

	// Three 8-bit function-set knocks force the controller into a known
	// state no matter which mode it woke up in, then one more nibble drops
	// it to 4-bit operation.
	for _, delay := range []time.Duration{4500 * time.Microsecond, 150 * time.Microsecond, 150 * time.Microsecond} {
		if err := d.writeNibble(0x30, 0); err != nil {
			return err
		}
		time.Sleep(delay)
	}
	if err := d.writeNibble(cmdFunctionSet, 0); err != nil {
		return err
	}

	sequence := []byte{
		cmdFunctionSet | functionTwoLine, // 4-bit, 2 lines, 5x8 font
		cmdDisplayCtrl,                   // display off while configuring
		cmdClear,
		cmdEntryMode | entryIncrement,
		cmdDisplayCtrl | displayOn,
	}
	for _, c := range sequence {
		if err := d.command(c); err != nil {
			return err
		}
		if c == cmdClear {
			time.Sleep(clearDelay)
		}
	}

	d.ready = true
	return nil
}

// LoadGlyphs writes up to 8 bitmaps into CGRAM starting at slot 0, then
// resets the address pointer to DDRAM. CGRAM and DDRAM share the same
// address-set mechanism; without the reset the next frame write would
// corrupt character memory instead of the screen.
func (d *Device) LoadGlyphs(table render.GlyphTable) error {
	if !d.ready {
		return ErrNotReady
	}

	for slot, glyph := range table {
		if slot >= render.MaxGlyphs {
			break
		}
		if err := d.command(cmdSetCGRAM | byte(slot)<<3); err != nil {
			return err
		}
		for _, row := range glyph {
			if err := d.writeData(row & 0x1F); err != nil {
				return err
			}
		}
	}

	return d.command(cmdSetDDRAM)
}

// WriteFrame streams each row from its fixed DDRAM base address. A failed
// write leaves the frame visually inconsistent until the next successful
// tick overwrites it.
func (d *Device) WriteFrame(frame *render.Frame) error {
	if !d.ready {
		return ErrNotReady
	}

	for row := range frame {
		if err := d.command(cmdSetDDRAM | rowAddress[row]); err != nil {
			return err
		}
		for _, ch := range frame[row] {
			if err := d.writeData(ch); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close blanks the display, switches it off, and drops the backlight.
func (d *Device) Close() error {
	if !d.ready {
		return nil
	}
	d.ready = false

	if err := d.command(cmdClear); err != nil {
		return err
	}
	time.Sleep(clearDelay)
	if err := d.command(cmdDisplayCtrl); err != nil {
		return err
	}

	// Release every expander line, backlight included.
	d.backlight = 0
	return d.write(0)
}

func (d *Device) command(b byte) error {
	return d.writeByte(b, 0)
}

func (d *Device) writeData(b byte) error {
	return d.writeByte(b, pinRS)
}

// writeByte transmits one byte as two nibbles, high first, each latched by
// an enable strobe.
func (d *Device) writeByte(b, ctrl byte) error {
	if err := d.writeNibble(b&0xF0, ctrl); err != nil {
		return err
	}
	return d.writeNibble(b<<4, ctrl)
}

// writeNibble puts four data bits plus the control bits on the expander
// and pulses enable high then low. The backlight bit rides along on every
// expander write so it cannot flicker between the two nibbles of a byte.
func (d *Device) writeNibble(nibble, ctrl byte) error {
	out := (nibble & 0xF0) | ctrl | d.backlight
	if err := d.write(out | pinEnable); err != nil {
		return err
	}
	time.Sleep(strobeHold)
	if err := d.write(out); err != nil {
		return err
	}
	time.Sleep(settleDelay)
	return nil
}

func (d *Device) write(b byte) error {
	if err := d.bus.Write([]byte{b}); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}
