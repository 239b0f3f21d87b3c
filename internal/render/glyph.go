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

// MaxGlyphs is the controller's CGRAM capacity: 8 custom character slots.
const MaxGlyphs = 8

// glyphWidth is the physical dot width of one character cell.
const glyphWidth = 5

// Glyph is one CGRAM bitmap: 8 rows of a 5-bit column mask, bit 4 being
// the leftmost column.
type Glyph [8]byte

// GlyphTable maps CGRAM slot indices to bitmaps. The slice index is the
// slot; a table never exceeds MaxGlyphs entries.
type GlyphTable []Glyph

// PartialGlyph builds the bitmap for a partial fill of level lit columns
// out of sub, filling left to right across every row. Encoder resolutions
// other than the physical 5-dot width are scaled onto it.
func PartialGlyph(level, sub int) Glyph {
	var g Glyph
	if level <= 0 || sub <= 0 {
		return g
	}
	if level > sub {
		level = sub
	}

	cols := (level*glyphWidth + sub/2) / sub
	if cols < 1 {
		cols = 1
	}
	if cols > glyphWidth {
		cols = glyphWidth
	}

	mask := byte((1<<cols - 1) << (glyphWidth - cols))
	for row := range g {
		g[row] = mask
	}

	return g
}

// glyphAllocator deduplicates the partial levels a frame needs into at
// most MaxGlyphs CGRAM slots. Slots are handed out in frame scan order;
// once the table is full, further distinct levels collapse to the nearest
// already-allocated level, ties resolving to the lower level.
type glyphAllocator struct {
	sub    int
	slots  map[int]int // partial level -> slot
	levels []int       // slot -> partial level, allocation order
}

func newGlyphAllocator(sub int) *glyphAllocator {
	return &glyphAllocator{
		sub:   sub,
		slots: make(map[int]int),
	}
}

// slotFor returns the CGRAM slot rendering the given partial level,
// allocating or collapsing as needed. Graceful degradation only: slotFor
// never fails.
func (a *glyphAllocator) slotFor(level int) int {
	if slot, ok := a.slots[level]; ok {
		return slot
	}

	if len(a.levels) < MaxGlyphs {
		slot := len(a.levels)
		a.slots[level] = slot
		a.levels = append(a.levels, level)
		return slot
	}

	best := a.levels[0]
	for _, allocated := range a.levels[1:] {
		diff, bestDiff := absInt(allocated-level), absInt(best-level)
		if diff < bestDiff || (diff == bestDiff && allocated < best) {
			best = allocated
		}
	}

	return a.slots[best]
}

// table renders the allocated levels into CGRAM bitmaps.
func (a *glyphAllocator) table() GlyphTable {
	t := make(GlyphTable, len(a.levels))
	for slot, level := range a.levels {
		t[slot] = PartialGlyph(level, a.sub)
	}
	return t
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
