package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/config"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Long:  "Print the current version. With --verbose, also print the server and files this build would use.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "lugat", version)
		if v, _ := cmd.Flags().GetBool("verbose"); !v {
			return nil
		}

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if u, _ := cmd.Flags().GetString("api-url"); u != "" {
			cfg.API.BaseURL = u
		}
		if cfgPath == "" {
			cfgPath = config.DefaultPath()
		}
		db, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		fmt.Fprintf(out, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "server:   %s\n", cfg.API.BaseURL)
		fmt.Fprintf(out, "config:   %s\n", cfgPath)
		fmt.Fprintf(out, "database: %s\n", db)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Also print the server URL and file locations")
}
