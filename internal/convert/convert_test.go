// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/conversation-retitle/pkg/types"
)

const threeRows = `conversation_id,first_name,topic,primary_emotions,notes
c1,John,Work Stress,Anxiety,call back tuesday
c2,Mary,Family + Finance,Guilt + Shame,"long, quoted note"
c3,Lee,Grief,  Fear and Sadness,"multi
line note"
`

// readCSV parses data and returns the header and data rows.
func readCSV(t *testing.T, data string) ([]string, [][]string) {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	return rows[0], rows[1:]
}

// writeInput creates name under dir with content and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOutputColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			name:   "id first",
			header: []string{"conversation_id", "first_name", "topic", "primary_emotions", "notes"},
			want:   []string{"conversation_id", "title", "first_name", "topic", "primary_emotions", "notes"},
		},
		{
			name:   "id in the middle keeps relative order",
			header: []string{"persona", "conversation_id", "first_name", "notes"},
			want:   []string{"conversation_id", "title", "persona", "first_name", "notes"},
		},
		{
			name:   "existing title is not duplicated",
			header: []string{"conversation_id", "title", "first_name"},
			want:   []string{"conversation_id", "title", "first_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputColumns(tt.header))
		})
	}
}

func TestConvert(t *testing.T) {
	var out bytes.Buffer
	result, err := Convert(context.Background(), strings.NewReader(threeRows), &out)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rows)

	header, rows := readCSV(t, out.String())
	assert.Equal(t, []string{"conversation_id", "title", "first_name", "topic", "primary_emotions", "notes"}, header)
	assert.Equal(t, header, result.Columns)
	require.Len(t, rows, 3)

	wantTitles := []string{"John-Work-Anxiety", "Mary-Family-Guilt", "Lee-Grief-Fear"}
	for i, row := range rows {
		assert.Equal(t, "c"+string(rune('1'+i)), row[0], "rows keep input order")
		assert.Equal(t, wantTitles[i], row[1])
		assert.Equal(t, "", row[5], "notes must be cleared")
	}
	assert.Equal(t, "Family + Finance", rows[1][3], "other columns pass through")
}

func TestConvertEmotionFallback(t *testing.T) {
	in := "conversation_id,first_name,topic,emotion,notes\nc1,Ana,Career Change,Joy,n\n"

	var out bytes.Buffer
	_, err := Convert(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)

	header, rows := readCSV(t, out.String())
	assert.Equal(t, []string{"conversation_id", "title", "first_name", "topic", "emotion", "notes"}, header)
	require.Len(t, rows, 1)

	segments := strings.Split(rows[0][1], "-")
	require.Len(t, segments, 3)
	assert.Equal(t, "Joy", segments[2])
}

func TestConvertOwnOutput(t *testing.T) {
	var first bytes.Buffer
	r1, err := Convert(context.Background(), strings.NewReader(threeRows), &first)
	require.NoError(t, err)

	var second bytes.Buffer
	r2, err := Convert(context.Background(), bytes.NewReader(first.Bytes()), &second)
	require.NoError(t, err)

	assert.Equal(t, r1.Rows, r2.Rows)
	assert.Equal(t, r1.Columns, r2.Columns)
	assert.Equal(t, first.String(), second.String())
}

func TestConvertStripsBOM(t *testing.T) {
	in := "\ufeffconversation_id,first_name,topic,emotion\nc1,Ana,Career,Joy\n"

	var out bytes.Buffer
	result, err := Convert(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, "conversation_id", result.Columns[0])
	_, rows := readCSV(t, out.String())
	assert.Equal(t, "c1", rows[0][0])
}

func TestConvertUnicode(t *testing.T) {
	in := "conversation_id,first_name,topic,primary_emotions,notes\nc1,Zoë,Überforderung im Job,Angst + Scham,日記\n"

	var out bytes.Buffer
	_, err := Convert(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)

	_, rows := readCSV(t, out.String())
	assert.Equal(t, "Zoë-Überforderung-Angst", rows[0][1])
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "no conversation_id column",
			input:   "first_name,topic\nJohn,Work\n",
			wantErr: ErrMissingConversationID,
		},
		{
			name:    "field count mismatch",
			input:   "conversation_id,first_name\nc1,John\nc2\n",
			wantErr: csv.ErrFieldCount,
			errMsg:  "reading row 2",
		},
		{
			name:    "bare quote",
			input:   "conversation_id,first_name\nc1,Jo\"hn\n",
			wantErr: csv.ErrBareQuote,
			errMsg:  "reading row 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Convert(context.Background(), strings.NewReader(tt.input), &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestConvertCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Convert(ctx, strings.NewReader(threeRows), &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ConvertConfig{
		InputPath:  writeInput(t, dir, "in.csv", threeRows),
		OutputPath: filepath.Join(dir, "out.csv"),
		ReportPath: filepath.Join(dir, "report.yaml"),
	}

	var log bytes.Buffer
	result, err := Run(context.Background(), cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rows)
	assert.Contains(t, log.String(), cfg.OutputPath)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	header, rows := readCSV(t, string(data))
	assert.Equal(t, "title", header[1])
	assert.Len(t, rows, 3)

	report, err := ReadReport(cfg.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.InputPath, report.InputPath)
	assert.Equal(t, cfg.OutputPath, report.OutputPath)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, header, report.Columns)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ConvertConfig{
		InputPath:  filepath.Join(dir, "missing.csv"),
		OutputPath: filepath.Join(dir, "out.csv"),
	}

	var log bytes.Buffer
	_, err := Run(context.Background(), cfg, &log)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "opening input")
	assert.Empty(t, log.String(), "no completion message on failure")

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "output must not be created when input is missing")
}

func TestRunMalformedRow(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ConvertConfig{
		InputPath:  writeInput(t, dir, "in.csv", "conversation_id,first_name\nc1,John,extra\n"),
		OutputPath: filepath.Join(dir, "out.csv"),
	}

	var log bytes.Buffer
	_, err := Run(context.Background(), cfg, &log)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
	assert.NotContains(t, log.String(), "Wrote")
}
