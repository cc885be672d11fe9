package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamilpajak/tsmend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.RunReport {
	start := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return &models.RunReport{
		RunID:        "f3c9d1f0-0000-4000-8000-000000000000",
		StartedAt:    start,
		FinishedAt:   start.Add(42 * time.Second),
		InitialTotal: 17,
		FinalTotal:   3,
		Converged:    false,
		Strategies: []models.StrategyResult{
			{
				Strategy:       "merge-imports",
				Category:       models.CategoryDuplicateImports,
				BeforeTotal:    17,
				AfterTotal:     11,
				BeforeCategory: 6,
				AfterCategory:  0,
				Iterations:     1,
				Fixes:          3,
				Success:        true,
			},
			{
				Strategy:       "drop-unused",
				Category:       models.CategoryUnusedImports,
				BeforeTotal:    11,
				AfterTotal:     11,
				BeforeCategory: 5,
				AfterCategory:  5,
				Iterations:     1,
				Fixes:          5,
				Reverted:       true,
			},
			{
				Category:   "other-TS9999",
				Skipped:    true,
				SkipReason: "no strategy registered",
			},
		},
	}
}

func TestWriter_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	w := Writer{
		JSONPath:     filepath.Join(dir, "tsmend-report.json"),
		MarkdownPath: filepath.Join(dir, "tsmend-report.md"),
	}

	require.NoError(t, w.Write(sampleReport()))

	data, err := os.ReadFile(w.JSONPath)
	require.NoError(t, err)

	var decoded models.RunReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 17, decoded.InitialTotal)
	assert.Len(t, decoded.Strategies, 3)

	md, err := os.ReadFile(w.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# tsmend run")
}

func TestWriter_EmptyPathsWriteNothing(t *testing.T) {
	require.NoError(t, Writer{}.Write(sampleReport()))
}

func TestWriter_BadPathReturnsError(t *testing.T) {
	w := Writer{JSONPath: filepath.Join(t.TempDir(), "missing", "report.json")}
	assert.Error(t, w.Write(sampleReport()))
}

func TestMarkdown_Content(t *testing.T) {
	md := Markdown(sampleReport())

	assert.Contains(t, md, "| 17 | 3 | 14 | 8 | no |")
	assert.Contains(t, md, "| duplicate-imports | merge-imports | 6 | 0 | 3 | 1 | improved |")
	assert.Contains(t, md, "| unused-imports | drop-unused | 5 | 5 | 5 | 1 | reverted |")
	assert.Contains(t, md, "| other-TS9999 | - | 0 | 0 | 0 | 0 | skipped |")
	assert.Contains(t, md, "## Skipped")
	assert.Contains(t, md, "`other-TS9999`: no strategy registered")
	assert.NotContains(t, md, "Dry run")
}

func TestMarkdown_DryRunNote(t *testing.T) {
	r := sampleReport()
	r.DryRun = true
	assert.Contains(t, Markdown(r), "**Dry run:**")
}

func TestMarkdown_NoStrategies(t *testing.T) {
	r := sampleReport()
	r.Strategies = nil
	assert.Contains(t, Markdown(r), "No strategies were run.")
}
