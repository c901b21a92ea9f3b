package main

import (
	"os"

	"github.com/spf13/cobra"

	"tzsync/internal/interfaces/cli/migrate"
	"tzsync/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tzsync",
		Short: "tzsync - shared timezone directory",
		Long:  `tzsync lets users sign in with an identity provider and publish their IANA timezone for others to look up.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
