// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conversation-retitle/internal/transform"
)

var titleCmd = &cobra.Command{
	Use:   "title FIRST_NAME TOPIC EMOTION",
	Short: "Print the title derived from one set of field values",
	Long: `Title prints the title convert would generate for a row with the given
first_name, topic, and emotion values. Quote values that contain spaces:

  retitle title Mary "Family + Finance" "Guilt + Shame"`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), transform.BuildTitle(args[0], args[1], args[2]))
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
