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

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/lcdstat/internal/devices"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List I2C buses, network interfaces and temperature sensors",
	Long: `List the I2C buses, network interfaces and thermal sensors available
on this host. This helps to configure the display target and the
interface slots accurately.

Examples:
  # List all available devices
  lcdstat list-devices

  # Use the output to configure the monitor
  lcdstat run --bus "/dev/i2c-1" --interfaces "eth0:1000"`,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	fmt.Println("\n========================================")
	fmt.Println("   LCDstat - Available Devices")
	fmt.Println("========================================")

	// List I2C buses
	buses, err := devices.ListI2CBuses()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing I2C buses: %v\n", err)
	case len(buses) == 0:
		fmt.Println("\nNo I2C buses found. Is the i2c-dev module loaded?")
	default:
		fmt.Print(devices.FormatI2CBusesTable(buses))
		fmt.Println("\nExample usage:")
		fmt.Printf("  lcdstat run --bus \"%s\"\n", buses[0].Name)
	}

	// List network interfaces
	networks, err := devices.ListNetworkInterfaces()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing network interfaces: %v\n", err)
	case len(networks) == 0:
		fmt.Println("\nNo network interfaces found.")
	default:
		fmt.Print(devices.FormatNetworksTable(networks))
		fmt.Println("\nExample usage:")
		fmt.Printf("  lcdstat run --interfaces \"%s:1000\"\n", networks[0].Name)
	}

	// List temperature sensors
	sensors, err := devices.ListTemperatureSensors()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing temperature sensors: %v\n", err)
	case len(sensors) == 0:
		fmt.Println("\nNo temperature sensors found.")
	default:
		fmt.Print(devices.FormatSensorsTable(sensors))
	}

	fmt.Println("\nNotes:")
	fmt.Println("  - Use comma to separate interface slots: --interfaces=\"eth0:1000,wlan0:300\"")
	fmt.Println("  - The link rate (max_mbps) scales throughput bars to percent of capacity")
	fmt.Println("  - The frame layout holds at most 6 interface slots")
	fmt.Println()

	return nil
}
