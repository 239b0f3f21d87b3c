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
	"math"

	"github.com/phuonguno98/lcdstat/pkg/metrics"
)

// Subdivisions is how many lit columns a single cell can resolve with the
// controller's 5x8 font: one per dot of cell width.
const Subdivisions = 5

// CellFill is the fill level of one gauge cell, expressed as the number of
// lit columns: 0 is an empty cell, the encoder's subdivision count is a
// full cell, and anything in between is a partial fill rendered with a
// custom glyph.
type CellFill int

// Encoder maps a percentage onto a run of gauge cells with sub-cell
// resolution.
type Encoder struct {
	Subdivisions int
}

// NewEncoder returns an encoder for the standard 5-dot cell width.
func NewEncoder() Encoder {
	return Encoder{Subdivisions: Subdivisions}
}

// Encode distributes value (a percentage, clamped to [0, 100]) across
// cellCount cells left to right: full cells first, then at most one partial
// cell, then empty cells. The output always has exactly cellCount entries;
// a zero cell count yields an empty sequence.
func (e Encoder) Encode(value float64, cellCount int) []CellFill {
	if cellCount <= 0 {
		return nil
	}

	sub := e.Subdivisions
	if sub <= 0 {
		sub = Subdivisions
	}

	value = metrics.ClampPercent(value)

	total := cellCount * sub
	filled := int(math.Round(value / 100.0 * float64(total)))
	if filled > total {
		filled = total
	}

	cells := make([]CellFill, cellCount)
	for i := range cells {
		if filled >= sub {
			cells[i] = CellFill(sub)
			filled -= sub
		} else {
			cells[i] = CellFill(filled)
			filled = 0
		}
	}

	return cells
}
