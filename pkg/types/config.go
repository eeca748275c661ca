// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultInputPath is used when neither a flag nor the config names an input.
	DefaultInputPath = "conversations.csv"

	// DefaultOutputPath is used when neither a flag nor the config names an output.
	DefaultOutputPath = "conversations-titled.csv"

	// DefaultIndexPath is the SQLite title index location.
	DefaultIndexPath = "retitle.db"
)

// ConvertConfig holds settings for a single conversion run.
type ConvertConfig struct {
	// InputPath is the CSV file to read.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the CSV file to create. An existing file is truncated.
	OutputPath string `json:"output" yaml:"output"`

	// ReportPath, when set, receives a YAML summary of the run.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}

// IndexConfig holds settings for the SQLite title index.
type IndexConfig struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults caps search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WithDefaults fills empty paths with their defaults.
func (c ConvertConfig) WithDefaults() ConvertConfig {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	return c
}
