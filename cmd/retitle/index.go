// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conversation-retitle/internal/index"
	"github.com/pdiddy/conversation-retitle/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the title index (load, lookup, search, export)",
	Long: `Index manages a local SQLite table of generated titles keyed by
conversation_id. Load converted CSV files into it, then look titles up by
ID or search them by prefix.`,
}

// --- load subcommand ---

var indexLoadCmd = &cobra.Command{
	Use:   "load [converted.csv...]",
	Short: "Load converted CSV files into the index",
	Long: `Load reads converted CSV files (with conversation_id and title columns)
and upserts one index entry per row. With no arguments the configured
output path is loaded.`,
	RunE: runIndexLoad,
}

func runIndexLoad(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{convertConfig().OutputPath}
	}

	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	for _, p := range paths {
		if _, err := store.Load(cmd.Context(), p, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// --- lookup subcommand ---

var indexLookupCmd = &cobra.Command{
	Use:   "lookup CONVERSATION_ID",
	Short: "Print the indexed title for a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := index.NewStore(indexConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return writeJSON(e)
		}
		fmt.Println(e.Title)
		return nil
	},
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [title-prefix]",
	Short: "List indexed conversations whose title starts with a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := index.NewStore(indexConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Search(cmd.Context(), prefix, limit)
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatSearchOutput(entries, jsonOutput)
	},
}

func formatSearchOutput(entries []index.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []index.Entry{}
		}
		return writeJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %s\n", "Conversation", "Title")
	for _, e := range entries {
		id := e.ConversationID
		if len(id) > 24 {
			id = id[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-24s  %s\n", id, e.Title)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(entries))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole index to stdout as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := index.NewStore(indexConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		switch format {
		case "yaml":
			return store.ExportYAML(cmd.Context(), os.Stdout)
		case "json":
			return store.ExportJSON(cmd.Context(), os.Stdout)
		default:
			return fmt.Errorf("unknown export format %q (use yaml or json)", format)
		}
	},
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// indexConfig resolves index settings from viper.
func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		DBPath:     viper.GetString("index.db_path"),
		MaxResults: viper.GetInt("index.max_results"),
	}
}

func init() {
	indexCmd.PersistentFlags().String("db", types.DefaultIndexPath, "SQLite index file")
	viper.BindPFlag("index.db_path", indexCmd.PersistentFlags().Lookup("db"))

	indexLookupCmd.Flags().Bool("json", false, "output the entry as JSON")

	indexSearchCmd.Flags().Int("limit", 0, "maximum number of results (default from config, else 20)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	indexCmd.AddCommand(indexLoadCmd, indexLookupCmd, indexSearchCmd, indexExportCmd)
	rootCmd.AddCommand(indexCmd)
}
