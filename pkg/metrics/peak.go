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

package metrics

// DefaultWindowSamples is the default sliding-window capacity, sized for a
// 60 second window at a one second tick.
const DefaultWindowSamples = 60

// PeakTracker maintains a sliding-window maximum over throughput samples.
// It holds the most recent observations in a fixed-capacity ring buffer;
// once the ring is full, each new sample evicts exactly the oldest one.
// The tracker is owned by the render loop and is not safe for concurrent
// use.
type PeakTracker struct {
	samples []float64
	head    int
	count   int
}

// NewPeakTracker creates a tracker holding up to capacity samples.
// Non-positive capacities fall back to DefaultWindowSamples.
func NewPeakTracker(capacity int) *PeakTracker {
	if capacity <= 0 {
		capacity = DefaultWindowSamples
	}
	return &PeakTracker{
		samples: make([]float64, capacity),
	}
}

// Observe records one throughput sample and returns the maximum across all
// samples currently held. Before the ring is full the maximum is taken only
// over the samples present. Negative samples are clamped to zero; Observe
// never fails.
func (p *PeakTracker) Observe(sample float64) float64 {
	if sample < 0 {
		sample = 0
	}

	p.samples[p.head] = sample
	p.head = (p.head + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}

	// Until the ring wraps the valid samples occupy the prefix, afterwards
	// every slot is valid, so scanning the first count slots covers both.
	peak := 0.0
	for i := 0; i < p.count; i++ {
		if p.samples[i] > peak {
			peak = p.samples[i]
		}
	}

	return peak
}

// Count returns the number of samples currently held.
func (p *PeakTracker) Count() int {
	return p.count
}

// Capacity returns the fixed ring capacity.
func (p *PeakTracker) Capacity() int {
	return len(p.samples)
}
