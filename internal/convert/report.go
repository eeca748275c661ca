// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/conversation-retitle/pkg/types"
)

// WriteReport saves a YAML summary of result to path.
func WriteReport(path string, result Result) error {
	report := types.RunReport{
		InputPath:  result.InputPath,
		OutputPath: result.OutputPath,
		Rows:       result.Rows,
		Columns:    result.Columns,
		FinishedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (types.RunReport, error) {
	var report types.RunReport
	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("reading report %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return report, nil
}
