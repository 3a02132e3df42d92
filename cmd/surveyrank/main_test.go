package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"ResponseId", "Q35_1", "Q35_2"},
		{"Response ID", "Rank the following - X", "Rank the following - Y"},
		{`{"ImportId":"_recordId"}`, `{"ImportId":"QID35_1"}`, `{"ImportId":"QID35_2"}`},
		{"R_1", 2, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestConvertThenAnalyze(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	csvPath := filepath.Join(dir, "data", "survey_data.txt")
	chartPath := filepath.Join(dir, "outputs", "rank_order.png")

	code, stdout, stderr := runCLI(t, "convert", "--input", input, "--output", csvPath)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Successfully converted "+input+" to "+csvPath+"\n", stdout)

	code, stdout, stderr = runCLI(t, "analyze", "--input", csvPath, "--chart", chartPath)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Y: 1.0\nX: 2.0\n")
	assert.Contains(t, stdout, "Saved chart to "+chartPath)

	_, err := os.Stat(chartPath)
	assert.NoError(t, err)
}

func TestAnalyzeShortCircuitsExitZero(t *testing.T) {
	dir := t.TempDir()
	chartPath := filepath.Join(dir, "outputs", "rank_order.png")

	missing := filepath.Join(dir, "data", "survey_data.csv")
	code, stdout, _ := runCLI(t, "analyze", "--input", missing, "--chart", chartPath)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Error: "+missing+" not found.")

	noColumns := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(noColumns, []byte("ResponseId,Q34_1\nResponse ID,Rank - X\nid,id\nR_1,1\n"), 0o644))
	code, stdout, _ = runCLI(t, "analyze", "--input", noColumns, "--chart", chartPath)
	assert.Equal(t, 0, code)
	assert.Equal(t, "No Q35 columns found.\n", stdout)

	_, err := os.Stat(chartPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFailuresExitOne(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{
			name:   "unknown backend",
			args:   []string{"analyze", "--input", filepath.Join(dir, "x.csv"), "--backend", "excel"},
			stderr: "unknown chart backend: excel",
		},
		{
			name:   "missing workbook",
			args:   []string{"convert", "--input", filepath.Join(dir, "absent.xlsx"), "--output", filepath.Join(dir, "out.csv")},
			stderr: "absent.xlsx",
		},
		{
			name:   "header-only table",
			args:   []string{"analyze", "--input", filepath.Join(dir, "header.csv"), "--chart", filepath.Join(dir, "c.png")},
			stderr: "question text row",
		},
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "header.csv"), []byte("Q35_1,Q35_2\n"), 0o644))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestConvertUnknownSheet(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	output := filepath.Join(dir, "data", "survey_data.csv")

	code, stdout, stderr := runCLI(t, "convert", "--input", input, "--output", output, "--sheet", "Responses")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `sheet "Responses" not found`)
	assert.Contains(t, stderr, "available sheets: Sheet1")

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}
