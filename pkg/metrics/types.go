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

import "time"

// Snapshot represents one tick of host telemetry feeding the renderer.
// It is produced once per tick by the collector manager and is read-only
// afterwards; nothing outside the peak tracker retains history.
type Snapshot struct {
	Timestamp      time.Time
	CPULoad        []float64           // Per-core utilization percentage, core order
	Net            map[int]NetActivity // Key: configured interface slot (0..5)
	CPUTempCelsius int                 // CPU temperature in whole degrees
	MemUsedPercent float64             // Memory utilization percentage
	PeakSampleMbps float64             // Instantaneous throughput sample feeding the tracker
}

// NetActivity represents one interface's throughput for a single tick.
// Percentages are normalized against the configured maximum link rate.
type NetActivity struct {
	TxPercent float64
	RxPercent float64
	TxMbps    float64
	RxMbps    float64
}

// CPUTimeStats represents CPU time statistics for delta calculations.
// One value per core when sampled per-core.
type CPUTimeStats struct {
	User      float64
	System    float64
	Idle      float64
	IOWait    float64
	Irq       float64
	SoftIrq   float64
	Steal     float64
	Guest     float64
	GuestNice float64
	Timestamp time.Time
}

// NetworkIOStats represents network I/O counters for delta calculations.
type NetworkIOStats struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}
