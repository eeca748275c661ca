// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunReport summarizes one conversion run. It is written as YAML next to the
// output when a report path is configured.
type RunReport struct {
	InputPath  string    `json:"input" yaml:"input"`
	OutputPath string    `json:"output" yaml:"output"`
	Rows       int       `json:"rows" yaml:"rows"`
	Columns    []string  `json:"columns" yaml:"columns"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
