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
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phuonguno98/lcdstat/internal/render"
)

// partialBlocks maps lit-column counts (out of 5) to left block runes so a
// terminal shows roughly the same bar the LCD would.
var partialBlocks = [6]rune{' ', '▎', '▍', '▋', '▊', '█'}

// Mock renders frames to a text console instead of hardware, for
// development without a physical display. It accepts the same glyph and
// frame calls as the hardware driver but does not model CGRAM: glyph
// bitmaps are mapped straight to Unicode partial blocks.
type Mock struct {
	out    io.Writer
	levels [render.MaxGlyphs]int // Lit columns per slot, from the last glyph load
	style  lipgloss.Style
}

// NewMock creates a console mock writing framed output to out.
func NewMock(out io.Writer) *Mock {
	return &Mock{
		out:   out,
		style: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
}

// Init satisfies Display; the console needs no setup.
func (m *Mock) Init() error {
	return nil
}

// LoadGlyphs records how many columns each slot's bitmap lights, judged
// from its top row.
func (m *Mock) LoadGlyphs(table render.GlyphTable) error {
	for slot, glyph := range table {
		if slot >= render.MaxGlyphs {
			break
		}
		m.levels[slot] = bits.OnesCount8(glyph[0] & 0x1F)
	}
	return nil
}

// WriteFrame draws the frame as a bordered 20x4 text block.
func (m *Mock) WriteFrame(frame *render.Frame) error {
	lines := make([]string, 0, render.Rows)
	for row := range frame {
		var sb strings.Builder
		for _, ch := range frame[row] {
			sb.WriteRune(m.runeFor(ch))
		}
		lines = append(lines, sb.String())
	}

	if _, err := fmt.Fprintln(m.out, m.style.Render(strings.Join(lines, "\n"))); err != nil {
		return &TransportError{Op: "console write", Err: err}
	}
	return nil
}

// Close satisfies Display; there is nothing to release.
func (m *Mock) Close() error {
	return nil
}

// runeFor maps one controller character code to a printable rune.
func (m *Mock) runeFor(ch byte) rune {
	switch {
	case ch == render.CharFull:
		return '█'
	case ch == render.CharDegree:
		return '°'
	case int(ch) < render.MaxGlyphs:
		level := m.levels[ch]
		if level < 0 {
			level = 0
		}
		if level >= len(partialBlocks) {
			level = len(partialBlocks) - 1
		}
		return partialBlocks[level]
	case ch < 0x20 || ch > 0x7E:
		return ' '
	default:
		return rune(ch)
	}
}
