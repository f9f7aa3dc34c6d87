package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/arcademia/internal/config"
	"github.com/philipparndt/arcademia/internal/logging"
	"github.com/philipparndt/arcademia/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "arcademia",
	Short: "Describe, speak and stream CAD models",
	Long: `arcademia loads STL, OBJ and OpenSCAD models, measures them and turns the
measurements into plain sentences that can be read aloud. Meshes can also be
streamed to an AR headset over UDP.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setup loads the configuration and applies the log level before any command runs
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logging.Debug("configuration loaded from %s", configPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
