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

// Package display drives a 20x4 character frame onto either a real HD44780
// controller behind an I2C expander or a console mock for development
// without hardware.
package display

import (
	"fmt"

	"github.com/phuonguno98/lcdstat/internal/render"
)

// Display is the sink the render loop writes through. The hardware driver
// and the console mock accept identical calls.
type Display interface {
	// Init prepares the display for frames. Safe to call once at startup.
	Init() error
	// LoadGlyphs installs the frame's custom character table.
	LoadGlyphs(table render.GlyphTable) error
	// WriteFrame renders one full frame.
	WriteFrame(frame *render.Frame) error
	// Close blanks the display and releases the underlying handle.
	Close() error
}

// TransportError reports a failed write on the underlying bus. The driver
// never retries and never recovers a partial frame; the render loop
// decides whether to skip the tick or abort.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("display transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
