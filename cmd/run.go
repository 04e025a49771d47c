package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	e.logger.Info("starting tui")
	return app.Run(e.ws, app.Options{Splash: !noSplash})
}
