package ui

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBar(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, true)

	tests := []struct {
		score  float64
		filled int
	}{
		{score: 0, filled: 0},
		{score: 50, filled: 5},
		{score: 75, filled: 7},
		{score: 100, filled: 10},
		{score: 140, filled: 10},
		{score: -3, filled: 0},
		{score: math.NaN(), filled: 0},
	}
	for _, tt := range tests {
		bar := w.ScoreBar(tt.score, 10)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "score %v", tt.score)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "score %v", tt.score)
	}
}

func TestScoreBarColor(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, false)
	assert.True(t, strings.HasPrefix(w.ScoreBar(75, 4), Red))
	assert.True(t, strings.HasPrefix(w.ScoreBar(60, 4), Yellow))
	assert.True(t, strings.HasPrefix(w.ScoreBar(25, 4), Green))
}

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Diagnosis", "Score")
	table.AddRow("DNS problem", "75.00")
	table.AddRow("No fault", "25.00")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Diagnosis   │ Score", lines[0])
	assert.Equal(t, "DNS problem │ 75.00", lines[2])
}

func TestDiagnosisSummaryFailure(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	s := w.NewDiagnosisSummary()
	s.Failed = true
	s.ErrorText = "diagnosis error: boom"
	s.Render()

	assert.Contains(t, buf.String(), "✗ diagnosis error: boom")
	assert.NotContains(t, buf.String(), "Certainty")
}

func TestTextWithPercentIsWrittenVerbatim(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.SubHeader("Packet loss [%] (input)")
	w.Header("Loss 100%")
	table := w.NewTable("x", "%d")
	table.AddRow("50%", "0.50")
	table.Render()

	out := buf.String()
	assert.NotContains(t, out, "%!")
	assert.Contains(t, out, "▸ Packet loss [%] (input)\n")
	assert.Contains(t, out, "━━━ Loss 100% ━━━")
	assert.Contains(t, out, "x   │ %d  \n")
	assert.Contains(t, out, "50% │ 0.50\n")
}

func TestVerbosityGatesInfoAndDebug(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Debug("hidden %d", 1)
	w.Info("shown %d", 1)
	w.Warning("careful")
	assert.Equal(t, "ℹ shown 1\n⚠ careful\n", buf.String())

	buf.Reset()
	w.SetVerbosity(2)
	w.Debug("engine: %s", "discrete")
	assert.Equal(t, "  engine: discrete\n", buf.String())

	buf.Reset()
	w.SetVerbosity(0)
	w.Info("quiet")
	assert.Empty(t, buf.String())
}
