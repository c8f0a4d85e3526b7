// Emu is a terminal dashboard for managing Android emulators and iOS
// simulators.
//
// It shows both device fleets side by side, lets you start, stop,
// create, wipe, and delete devices, and keeps the view current by
// polling the platform tools in the background. Android management
// works everywhere the SDK is installed; iOS management needs macOS
// with Xcode command line tools.
//
// Usage:
//
//	emu [flags]
//
// See 'emu --help' for available options.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wasabeef/emu-sub003/internal/cache"
	"github.com/wasabeef/emu-sub003/internal/config"
	"github.com/wasabeef/emu-sub003/internal/exec"
	"github.com/wasabeef/emu-sub003/internal/logging"
	"github.com/wasabeef/emu-sub003/internal/manager"
	"github.com/wasabeef/emu-sub003/internal/tui"
	"github.com/wasabeef/emu-sub003/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "emu",
	Short: "Android emulator and iOS simulator dashboard",
	Long: `A terminal dashboard for managing Android emulators and iOS simulators.

Both platforms appear side by side. Devices can be started, stopped,
created, wiped, and deleted from the keyboard, and the lists refresh
automatically while the dashboard is open.

Logging is silent by default; set EMU_LOG_LEVEL (or --log-level, or
log_level in the config file) to write a log file under the user
config directory.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

var logLevel string

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// Optional .env next to the binary, same precedence as the shell.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; emu is an interactive dashboard")
	}

	runner := exec.NewDefaultRunner()

	// A missing platform toolchain degrades to an empty panel, it does
	// not prevent startup.
	var android manager.DeviceManager
	if a, err := manager.NewAndroidManager(runner); err == nil {
		android = a
	} else {
		logging.Warn("android tooling unavailable: " + err.Error())
	}
	var ios manager.DeviceManager
	if i, err := manager.NewIOSManager(runner); err == nil {
		ios = i
	} else {
		logging.Warn("ios tooling unavailable: " + err.Error())
	}
	if android == nil && ios == nil {
		return fmt.Errorf("no device tooling found: install the Android SDK or Xcode command line tools")
	}

	disk := cache.NewDiskCache(cfg.Cache.Path)
	if !cfg.Cache.Enabled {
		disk = cache.NewDisabledDiskCache()
	}

	model := tui.New(tui.Options{
		Android:        android,
		IOS:            ios,
		DiskCache:      disk,
		DefaultRAM:     cfg.Defaults.RAMSize,
		DefaultStorage: cfg.Defaults.StorageSize,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard exited with an error: %w", err)
	}
	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("emu %s (commit: %s)\n", version.Version, version.Commit)
	},
}
