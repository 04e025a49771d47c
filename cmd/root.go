package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/config"
	"github.com/abhisek/lugat/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lugat",
	Short: "English-Uzbek vocabulary trainer",
	Long:  "Lugat keeps your English-Uzbek word list on the server and quizzes you on any slice of it, right in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LUGAT_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LUGAT_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides LUGAT_API_URL env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, forgotCmd, resetPasswordCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from the config, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
