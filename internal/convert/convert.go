// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites a conversation CSV: every row gains a derived
// title, loses its notes, and the title becomes the second column.
package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pdiddy/conversation-retitle/internal/transform"
	"github.com/pdiddy/conversation-retitle/pkg/types"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// ErrMissingConversationID is returned when the input header has no
// conversation_id column.
var ErrMissingConversationID = errors.New("input header has no " + types.ColConversationID + " column")

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = errors.New("input has no header row")

// Result describes a finished conversion.
type Result struct {
	InputPath  string
	OutputPath string
	Rows       int
	Columns    []string
}

// OutputColumns returns the output header for an input header:
// conversation_id, title, then the remaining input columns in their original
// order. An input title column is dropped since the title is recomputed.
func OutputColumns(header []string) []string {
	cols := make([]string, 0, len(header)+1)
	cols = append(cols, types.ColConversationID, types.ColTitle)
	for _, h := range header {
		if h == types.ColConversationID || h == types.ColTitle {
			continue
		}
		cols = append(cols, h)
	}
	return cols
}

// Convert streams CSV rows from r to w, transforming each one. Rows are
// written in input order; a parse error on any row aborts the conversion.
// The returned Result carries the row count and output columns only.
func Convert(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	var result Result

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return result, ErrEmptyInput
	}
	if err != nil {
		return result, fmt.Errorf("reading header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	if !slices.Contains(header, types.ColConversationID) {
		return result, ErrMissingConversationID
	}

	result.Columns = OutputColumns(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return result, fmt.Errorf("writing header: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("reading row %d: %w", result.Rows+1, err)
		}

		rec := make(types.Record, len(header))
		for i, h := range header {
			rec[h] = row[i]
		}

		out := transform.TransformRecord(rec)
		if err := cw.Write(out.Values(result.Columns)); err != nil {
			return result, fmt.Errorf("writing row %d: %w", result.Rows+1, err)
		}
		result.Rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return result, fmt.Errorf("flushing output: %w", err)
	}
	return result, nil
}

// Run converts cfg.InputPath into cfg.OutputPath. Both files are closed on
// every return path. On success a completion line naming the output is
// written to log and, if cfg.ReportPath is set, a YAML report is saved.
func Run(ctx context.Context, cfg types.ConvertConfig, log io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()

	in, err := os.Open(cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening input %s: %w", cfg.InputPath, err)
	}
	defer in.Close()

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating output %s: %w", cfg.OutputPath, err)
	}
	defer out.Close()

	result, err := Convert(ctx, in, out)
	result.InputPath = cfg.InputPath
	result.OutputPath = cfg.OutputPath
	if err != nil {
		return result, fmt.Errorf("converting %s: %w", cfg.InputPath, err)
	}
	if err := out.Close(); err != nil {
		return result, fmt.Errorf("closing output %s: %w", cfg.OutputPath, err)
	}

	fmt.Fprintf(log, "Wrote %d rows to %s\n", result.Rows, result.OutputPath)

	if cfg.ReportPath != "" {
		if err := WriteReport(cfg.ReportPath, result); err != nil {
			return result, err
		}
		fmt.Fprintf(log, "Report: %s\n", cfg.ReportPath)
	}
	return result, nil
}
