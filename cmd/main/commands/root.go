package commands

import (
	"context"
	"fmt"
	"os"

	"autolist/lister/internal/config"
	"autolist/lister/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configDir string
	app       *container.Container
)

var rootCmd = &cobra.Command{
	Use:           "autolist",
	Short:         "autolist scrapes a product page, re-hosts its image and lists it on the marketplace.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(configDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log.Debug("Configuration loaded successfully")

		app, err = container.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding config.yaml.")
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// ExecuteContext runs the CLI and returns the process exit code
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	// PostRun is skipped when a command fails, the browser must still go
	if closeErr := closeApp(); closeErr != nil {
		log.Warnf("⚠️ Shutdown: %v", closeErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
