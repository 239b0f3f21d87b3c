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

// CalculateCPUUtilization calculates CPU utilization percentage from two CPU
// time snapshots of the same core.
// Formula: 100 * (1 - ΔIdle / ΔTotal)
func CalculateCPUUtilization(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return 0.0
	}

	prevTotal := prev.User + prev.System + prev.Idle + prev.IOWait + prev.Irq + prev.SoftIrq + prev.Steal
	currentTotal := current.User + current.System + current.Idle + current.IOWait + current.Irq + current.SoftIrq + current.Steal

	deltaTotal := currentTotal - prevTotal
	deltaIdle := current.Idle - prev.Idle

	if deltaTotal <= 0 {
		return 0.0
	}

	return 100.0 * (1.0 - deltaIdle/deltaTotal)
}

// CalculateInterfaceMbps calculates transmit and receive throughput in
// megabits per second from two network I/O snapshots of the same interface.
// Formula per direction: (ΔBytes × 8) / Δt / 1e6
func CalculateInterfaceMbps(prev, current NetworkIOStats) (txMbps, rxMbps float64) {
	if prev.Timestamp.IsZero() {
		return 0.0, 0.0
	}

	deltaTime := current.Timestamp.Sub(prev.Timestamp).Seconds()
	if deltaTime <= 0 {
		return 0.0, 0.0
	}

	deltaSent := current.BytesSent - prev.BytesSent
	deltaRecv := current.BytesRecv - prev.BytesRecv

	txMbps = float64(deltaSent*8) / deltaTime / 1e6
	rxMbps = float64(deltaRecv*8) / deltaTime / 1e6

	return txMbps, rxMbps
}

// ClampPercent clamps a value to the [0, 100] percentage range. Sampling
// imprecision can push normalized values slightly outside the range; out of
// range input is never an error.
func ClampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
