package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wcagcheck/internal/models"
)

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}), "buffers are never terminals")

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ColorEnabled(f), "regular files are not terminals")
}

func TestLevelBadge(t *testing.T) {
	assert.Equal(t, "[A]", LevelBadge(models.LevelA, false))
	assert.Equal(t, "[AA]", LevelBadge(models.LevelAA, false))

	colored := LevelBadge(models.LevelAA, true)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "[AA]")
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status models.Status
		want   string
	}{
		{models.StatusPass, "PASS   "},
		{models.StatusFail, "FAIL   "},
		{models.StatusNotApplicable, "N/A    "},
		{models.StatusPending, "PENDING"},
		{models.Status(""), "PENDING"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusBadge(tt.status, false))
	}
	assert.Contains(t, StatusBadge(models.StatusFail, true), "\x1b[")
}

func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"empty", 0, 8, "[          ] 0/8 (0%)"},
		{"partial", 3, 8, "[===       ] 3/8 (37%)"},
		{"complete", 8, 8, "[==========] 8/8 (100%)"},
		{"over", 9, 8, "[==========] 9/8 (100%)"},
		{"zero total", 0, 0, "[          ] 0/0 (0%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, 10, false)
			pb.Update(tt.current)
			assert.Equal(t, tt.want, pb.Render())
		})
	}
}

func TestProgressBarColor(t *testing.T) {
	pb := NewProgressBar(4, 0, true)
	pb.Update(2)
	assert.True(t, strings.HasPrefix(pb.Render(), "\x1b[36m"), "cyan while in progress")
	pb.Update(4)
	assert.True(t, strings.HasPrefix(pb.Render(), "\x1b[32m"), "green when complete")
}

func TestQuestionHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	QuestionHeader(buf, 2, 8, false)
	assert.Equal(t, "Question 3 of 8 [=======             ] 3/8 (37%)\n", buf.String())
}

func TestWarningDisplay(t *testing.T) {
	w := Warning{
		Title:      "Impact mismatch",
		Message:    "q3 declares 6 criteria but removes 8",
		Items:      []string{"1.3.4", "2.5.7"},
		Suggestion: "Update the impact",
	}
	buf := &bytes.Buffer{}
	w.Display(buf)

	want := "Warning: Impact mismatch\n" +
		"    q3 declares 6 criteria but removes 8\n" +
		"    Affected (2):\n" +
		"      1. 1.3.4\n" +
		"      2. 2.5.7\n" +
		"    Suggestion: Update the impact\n"
	assert.Equal(t, want, buf.String())

	single := Warning{Title: "t", Items: []string{"x"}}
	assert.Contains(t, single.String(), "    Affected:\n      1. x\n")
	assert.Equal(t, "Warning: bare\n", Warning{Title: "bare"}.String())
}
