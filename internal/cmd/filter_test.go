package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCommand_NoAnswers(t *testing.T) {
	testHome(t)

	out, _, err := execute(t, "", "filter")
	require.NoError(t, err)
	assert.Contains(t, out, "Criteria to test (55 of 55):")
	assert.NotContains(t, out, "Removed")
}

func TestFilterCommand_Text(t *testing.T) {
	testHome(t)

	out, _, err := execute(t, "", "filter", "--answer", "q1=no", "--answer", "q2=no")
	require.NoError(t, err)

	assert.Contains(t, out, "Criteria to test (39 of 55):")
	assert.Contains(t, out, "Removed (16):")
	assert.Contains(t, out, "Identify Input Purpose (by q1)")
	assert.Contains(t, out, "Captions (Prerecorded) (by q2)")

	active, _, _ := strings.Cut(out, "Removed")
	assert.NotContains(t, active, "1.3.5")
	assert.Contains(t, active, "1.1.1")
}

func TestFilterCommand_JSON(t *testing.T) {
	testHome(t)

	out, _, err := execute(t, "", "filter", "--answer", "q8=no", "--json")
	require.NoError(t, err)

	var result filterResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, map[string]string{"q8": "no"}, result.Answers)
	assert.Len(t, result.Active, 54)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, "2.4.1", result.Removed[0].ID)
	assert.Equal(t, "q8", result.Removed[0].RemovedBy)
	assert.Equal(t, "Bypass Blocks", result.Removed[0].Title)
}

func TestFilterCommand_OrderOfFlagsDoesNotMatter(t *testing.T) {
	testHome(t)

	a, _, err := execute(t, "", "filter", "--json", "--answer", "q1=no", "--answer", "q6=no")
	require.NoError(t, err)
	b, _, err := execute(t, "", "filter", "--json", "--answer", "q6=no", "--answer", "q1=no")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFilterCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown question", []string{"--answer", "q99=no"}, `unknown question "q99"`},
		{"invalid value", []string{"--answer", "q1=maybe"}, "options: yes, no"},
		{"malformed", []string{"--answer", "q1"}, "expected question=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHome(t)
			_, _, err := execute(t, "", append([]string{"filter"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
