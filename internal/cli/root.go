// Package cli wires the mapview commands.
package cli

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/soar/mapview/internal/config"
)

var (
	// Global flags
	verbose bool

	frontendFS fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "mapview",
	Short: "Handheld controller mapping diagram",
	Long: `mapview draws the front and back of a handheld console with its touch zones and
shows which console button each zone is mapped to.

Examples:
  mapview serve                           # Live diagram at http://localhost:8080
  mapview render --out map.svg --preset 1 # Write one frame
  mapview preview --detail back           # Desktop window
  mapview presets                         # List presets and their bindings`,
	SilenceUsage: true,
}

// Execute runs the root command. frontend holds the browser client served by "serve".
func Execute(frontend fs.FS) {
	frontendFS = frontend
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --debug)")
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// loadConfig resolves the settings for cmd, including inherited persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Debug = true
		config.SetDebug(true)
	}
	return cfg, nil
}
