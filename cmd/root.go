package cmd

import (
	"github.com/cvsuagritech/agrisight-go/cmd/analyze"
	"github.com/cvsuagritech/agrisight-go/cmd/report"
	"github.com/cvsuagritech/agrisight-go/cmd/seed"
	"github.com/cvsuagritech/agrisight-go/cmd/serve"
	synccmd "github.com/cvsuagritech/agrisight-go/cmd/sync"
	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agrisight",
		Short: "AgriSight rice crop health monitoring service",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		serve.Command(settings),
		analyze.Command(settings),
		report.Command(settings),
		seed.Command(settings),
		synccmd.Command(settings),
	)

	return rootCmd
}

// setupFlags binds global flags into viper so they override the config file.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().String("database", settings.Database.SQLite.Path, "Path to the SQLite database")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("database.sqlite.path", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if path, err := cmd.Flags().GetString("database"); err == nil && path != "" {
			settings.Database.SQLite.Path = path
		}
		return nil
	}
}
