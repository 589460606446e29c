package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/lifexp/infra/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the lifexp configuration",
	// the config commands must work without a valid config
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(logLevel)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configForce {
			return fmt.Errorf("config already exists at '%s', use --force to overwrite", configPath)
		}
		if err := config.Save(config.Default(), configPath); err != nil {
			return err
		}
		log.Info().Str("path", configPath).Msg("wrote default config")
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configPath, "path", filepath.Join(config.DefaultPath, "lifexp.yaml"), "where to write the config file")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
