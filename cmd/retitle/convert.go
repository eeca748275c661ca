// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conversation-retitle/internal/convert"
	"github.com/pdiddy/conversation-retitle/internal/index"
	"github.com/pdiddy/conversation-retitle/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Write a copy of a conversation CSV with a title column",
	Long: `Convert reads the input CSV, derives a title for every row, clears the
notes column, and writes the output CSV with columns ordered as
conversation_id, title, then the remaining input columns.

Paths come from flags, then the config file or RETITLE_* environment
variables, then the defaults.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig()

	result, err := convert.Run(cmd.Context(), cfg, os.Stdout)
	if err != nil {
		return err
	}

	if !viper.GetBool("index.enabled") {
		return nil
	}
	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Load(cmd.Context(), result.OutputPath, os.Stdout)
	return err
}

// convertConfig resolves conversion paths from viper, which already layers
// flags over environment and config file values.
func convertConfig() types.ConvertConfig {
	return types.ConvertConfig{
		InputPath:  viper.GetString("input"),
		OutputPath: viper.GetString("output"),
		ReportPath: viper.GetString("report"),
	}.WithDefaults()
}

func init() {
	convertCmd.Flags().StringP("input", "i", types.DefaultInputPath, "CSV file to read")
	convertCmd.Flags().StringP("output", "o", types.DefaultOutputPath, "CSV file to write")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().Bool("index", false, "load the output into the title index after converting")

	viper.BindPFlag("input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("report", convertCmd.Flags().Lookup("report"))
	viper.BindPFlag("index.enabled", convertCmd.Flags().Lookup("index"))

	rootCmd.AddCommand(convertCmd)
}
