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
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phuonguno98/lcdstat/internal/collector"
	"github.com/phuonguno98/lcdstat/internal/config"
	"github.com/phuonguno98/lcdstat/internal/devices"
	"github.com/phuonguno98/lcdstat/internal/display"
	"github.com/phuonguno98/lcdstat/internal/monitor"
	"github.com/phuonguno98/lcdstat/internal/render"
	"github.com/phuonguno98/lcdstat/pkg/version"
)

var (
	// Run command specific flags
	busName        string
	busAddress     uint16
	useMock        bool
	backlightOn    bool
	tickInterval   time.Duration
	peakWindow     time.Duration
	coreCount      int
	interfaceSpecs string
)

// defaultLinkMbps is assumed for autodetected interfaces with no
// configured link rate.
const defaultLinkMbps = 1000

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start rendering telemetry to the LCD",
	Long: `Start the sample-render loop: collect CPU, memory, network and
temperature readings once per tick and draw them as bar gauges on the LCD.

Examples:
  # Default hardware setup (first I2C bus, expander at 0x27)
  lcdstat run --interfaces "eth0:1000"

  # Preview in the terminal without hardware
  lcdstat run --mock

  # From a config file, overriding the tick rate
  lcdstat run --config /etc/lcdstat.yaml --interval 2s`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Define flags specifically for run command
	runCmd.Flags().StringVar(&busName, "bus", "",
		"I2C bus name or number (empty = first available)")
	runCmd.Flags().Uint16Var(&busAddress, "address", config.DefaultAddress,
		"I2C address of the PCF8574 expander")
	runCmd.Flags().BoolVar(&useMock, "mock", false,
		"Render to the terminal instead of hardware")
	runCmd.Flags().BoolVar(&backlightOn, "backlight", true,
		"Drive the LCD backlight")
	runCmd.Flags().DurationVar(&tickInterval, "interval", config.DefaultTick,
		"Render tick interval (e.g., 1s, 2s)")
	runCmd.Flags().DurationVar(&peakWindow, "window", config.DefaultPeakWindow,
		"Sliding window for the network peak readout")
	runCmd.Flags().IntVar(&coreCount, "cores", 0,
		"CPU core bars to show (0 = autodetect)")
	runCmd.Flags().StringVar(&interfaceSpecs, "interfaces", "",
		"Comma-separated name:max_mbps list (empty = autodetect)")
}

// buildRunConfig assembles the configuration from the optional config file
// and command line flags. Flags that were set explicitly win over the file.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.New()
	}

	flags := cmd.Flags()
	if flags.Changed("bus") {
		cfg.Bus = busName
	}
	if flags.Changed("address") {
		cfg.Address = busAddress
	}
	if flags.Changed("mock") {
		cfg.Mock = useMock
	}
	if flags.Changed("backlight") {
		cfg.Backlight = backlightOn
	}
	if flags.Changed("interval") {
		cfg.Tick = tickInterval
	}
	if flags.Changed("window") {
		cfg.PeakWindow = peakWindow
	}
	if flags.Changed("cores") {
		cfg.Cores = coreCount
	}
	if flags.Changed("interfaces") {
		cfg.Interfaces, err = config.ParseInterfaces(interfaceSpecs)
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") || cfg.LogFile == "" {
		cfg.LogFile = logFile
	}

	if cfg.Cores == 0 {
		cfg.Cores = min(runtime.NumCPU(), render.MaxCores)
	}
	if len(cfg.Interfaces) == 0 {
		cfg.Interfaces = autodetectInterfaces()
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// autodetectInterfaces picks the usual wired and wireless interface names
// when none were configured. The link rate falls back to a 1 Gbit default;
// configure interfaces explicitly for accurate percentages.
func autodetectInterfaces() []config.InterfaceConfig {
	known, err := devices.ListNetworkInterfaces()
	if err != nil {
		return nil
	}

	result := make([]config.InterfaceConfig, 0, render.MaxInterfaces)
	for _, iface := range known {
		if !hasAnyPrefix(iface.Name, "eth", "en", "wlan", "wl") {
			continue
		}
		result = append(result, config.InterfaceConfig{
			Name:    iface.Name,
			MaxMbps: defaultLinkMbps,
		})
		if len(result) == render.MaxInterfaces {
			break
		}
	}

	return result
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// runMonitor is the main monitoring entry point.
func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)

	sessionID := uuid.NewString()
	logger.Info("Starting LCDstat",
		"version", version.Info(),
		"session", sessionID,
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	builder, err := render.NewBuilder(cfg.Cores, len(cfg.Interfaces))
	if err != nil {
		return err
	}

	var disp display.Display
	if cfg.Mock {
		disp = display.NewMock(os.Stdout)
	} else {
		transport, err := display.OpenI2C(cfg.Bus, cfg.Address)
		if err != nil {
			logger.Error("Failed to open I2C bus", "bus", cfg.Bus, "error", err)
			return err
		}
		defer func() {
			if err := transport.Close(); err != nil {
				logger.Error("Failed to close I2C bus", "error", err)
			}
		}()
		disp = display.NewDevice(transport, cfg.Backlight)
	}
	defer func() {
		if err := disp.Close(); err != nil {
			logger.Error("Failed to close display", "error", err)
		}
	}()

	sampler := collector.NewManager(cfg, logger)
	loop := monitor.New(cfg, sampler, builder, disp, logger)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, initiating shutdown", "signal", sig)
		cancel()
	}()

	if err := loop.Run(ctx); err != nil {
		logger.Error("Render loop stopped with error", "error", err)
		return err
	}

	logger.Info("Shutdown complete", "session", sessionID)

	return nil
}
