// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the retitle CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the retitle CLI.
var rootCmd = &cobra.Command{
	Use:   "retitle",
	Short: "Add derived titles to conversation CSV exports",
	Long: `retitle rewrites a conversation CSV export. Each row gains a title built
from first_name, the first word of topic, and the first word of
primary_emotions (or emotion). The notes column is cleared and the title
becomes the second column, right after conversation_id.

Converted files can be loaded into a local SQLite index for lookup by
conversation ID or title prefix.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./retitle.yaml or ~/.config/retitle/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("retitle")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "retitle"))
		}
	}

	viper.SetEnvPrefix("RETITLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
