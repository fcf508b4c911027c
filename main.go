package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tablesync/config"
	"tablesync/syncer"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "tablesync",
		Short:        "Move tables between a database and csv/xlsx files",
		Long:         "tablesync exports configured database tables to files or imports files back into tables (truncate and reload), one table at a time.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config.Load: %w", err)
			}

			s, err := syncer.New(cfg)
			if err != nil {
				return fmt.Errorf("syncer.New: %w", err)
			}

			return s.Run(context.Background())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "tablesync.yml", "path to the config file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
