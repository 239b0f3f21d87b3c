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

// Package devices enumerates the hardware the monitor can use: network
// interfaces, I2C buses, and temperature sensors.
package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"
	"periph.io/x/conn/v3/i2c/i2creg"
	periphhost "periph.io/x/host/v3"
)

// Dependency injection points for testing
var (
	netInterfaces = net.Interfaces
	i2cBusRefs    = func() ([]*i2creg.Ref, error) {
		if _, err := periphhost.Init(); err != nil {
			return nil, err
		}
		return i2creg.All(), nil
	}
	tempSensors = host.SensorsTemperatures
)

// NetworkInfo represents network interface information.
type NetworkInfo struct {
	Name       string
	MacAddress string
	Addresses  []string
}

// I2CBusInfo represents an I2C bus registered on the host.
type I2CBusInfo struct {
	Name    string
	Number  int
	Aliases []string
}

// SensorInfo represents a thermal sensor reading.
type SensorInfo struct {
	Key         string
	Temperature float64
}

// ListNetworkInterfaces returns a list of available network interfaces.
func ListNetworkInterfaces() ([]NetworkInfo, error) {
	interfaces, err := netInterfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	networks := make([]NetworkInfo, 0)

	for _, iface := range interfaces {
		// Skip interfaces without addresses
		if len(iface.Addrs) == 0 {
			continue
		}

		addresses := make([]string, 0, len(iface.Addrs))
		for _, addr := range iface.Addrs {
			addresses = append(addresses, addr.Addr)
		}

		networks = append(networks, NetworkInfo{
			Name:       iface.Name,
			MacAddress: iface.HardwareAddr,
			Addresses:  addresses,
		})
	}

	// Sort by interface name
	sort.Slice(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})

	return networks, nil
}

// ListI2CBuses returns the I2C buses registered on this host.
func ListI2CBuses() ([]I2CBusInfo, error) {
	refs, err := i2cBusRefs()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate I2C buses: %w", err)
	}

	buses := make([]I2CBusInfo, 0, len(refs))
	for _, ref := range refs {
		buses = append(buses, I2CBusInfo{
			Name:    ref.Name,
			Number:  ref.Number,
			Aliases: ref.Aliases,
		})
	}

	sort.Slice(buses, func(i, j int) bool {
		return buses[i].Name < buses[j].Name
	})

	return buses, nil
}

// ListTemperatureSensors returns all thermal sensors the host exposes.
func ListTemperatureSensors() ([]SensorInfo, error) {
	stats, err := tempSensors()
	if err != nil && len(stats) == 0 {
		return nil, fmt.Errorf("failed to get temperature sensors: %w", err)
	}

	sensors := make([]SensorInfo, 0, len(stats))
	for _, s := range stats {
		sensors = append(sensors, SensorInfo{
			Key:         s.SensorKey,
			Temperature: s.Temperature,
		})
	}

	sort.Slice(sensors, func(i, j int) bool {
		return sensors[i].Key < sensors[j].Key
	})

	return sensors, nil
}

// FormatNetworksTable formats network interface information as a table.
func FormatNetworksTable(networks []NetworkInfo) string {
	var sb strings.Builder

	sb.WriteString("\nAvailable Network Interfaces:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-40s %-17s %s\n", "INTERFACE", "MAC ADDRESS", "IP ADDRESSES"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, n := range networks {
		mac := n.MacAddress
		if mac == "" {
			mac = "N/A"
		}

		// Show first IP address on same line
		firstIP := "N/A"
		if len(n.Addresses) > 0 {
			firstIP = n.Addresses[0]
		}

		sb.WriteString(fmt.Sprintf("%-40s %-17s %s\n",
			n.Name,
			mac,
			firstIP,
		))

		// Show additional IPs on separate lines
		for i := 1; i < len(n.Addresses); i++ {
			sb.WriteString(fmt.Sprintf("%-40s %-17s %s\n", "", "", n.Addresses[i]))
		}
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// FormatI2CBusesTable formats I2C bus information as a table.
func FormatI2CBusesTable(buses []I2CBusInfo) string {
	var sb strings.Builder

	sb.WriteString("\nAvailable I2C Buses:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-20s %-8s %s\n", "BUS", "NUMBER", "ALIASES"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, b := range buses {
		sb.WriteString(fmt.Sprintf("%-20s %-8d %s\n",
			b.Name,
			b.Number,
			strings.Join(b.Aliases, ", "),
		))
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// FormatSensorsTable formats temperature sensor information as a table.
func FormatSensorsTable(sensors []SensorInfo) string {
	var sb strings.Builder

	sb.WriteString("\nAvailable Temperature Sensors:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-50s %s\n", "SENSOR", "TEMPERATURE"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, s := range sensors {
		sb.WriteString(fmt.Sprintf("%-50s %.1f°C\n", s.Key, s.Temperature))
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}
