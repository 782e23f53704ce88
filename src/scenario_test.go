package vnovel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSituations = `situations:
  - question: "Should you falsify data?"
    answers: ["Yes", "No"]
    correct_answer: 1
  - question: "A colleague asks you to add them as an author on a paper they did not contribute to. What do you do?"
    answers: ["Add them", "Refuse", "Ask your supervisor first"]
    correct_answer: 1
`

func TestParseScenariosOrderAndCount(t *testing.T) {
	scenarios, err := ParseScenarios([]byte(validSituations))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "Should you falsify data?", scenarios[0].Question)
	assert.Equal(t, []string{"Yes", "No"}, scenarios[0].Answers)
	assert.Equal(t, 1, scenarios[0].CorrectAnswer)
	assert.Equal(t, "No", scenarios[0].Correct())

	assert.Equal(t, 1, scenarios[1].CorrectAnswer)
	assert.Len(t, scenarios[1].Answers, 3)
}

func TestParseScenariosMalformedYAML(t *testing.T) {
	_, err := ParseScenarios([]byte("situations:\n  - question: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScenarioParse)
}

func TestParseScenariosNoSituations(t *testing.T) {
	_, err := ParseScenarios([]byte("situations: []"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScenarioParse)
}

func TestParseScenariosValidation(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			name: "empty answers",
			doc: `situations:
  - question: "Q"
    answers: []
    correct_answer: 0
`,
		},
		{
			name: "single answer",
			doc: `situations:
  - question: "Q"
    answers: ["only one"]
    correct_answer: 0
`,
		},
		{
			name: "correct_answer out of range",
			doc: `situations:
  - question: "Q"
    answers: ["a", "b"]
    correct_answer: 2
`,
		},
		{
			name: "negative correct_answer",
			doc: `situations:
  - question: "Q"
    answers: ["a", "b"]
    correct_answer: -1
`,
		},
		{
			name: "blank question",
			doc: `situations:
  - question: "  "
    answers: ["a", "b"]
    correct_answer: 0
`,
		},
		{
			name: "blank answer",
			doc: `situations:
  - question: "Q"
    answers: ["a", "  "]
    correct_answer: 0
`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenarios([]byte(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrScenarioInvalid)
		})
	}
}

func TestLoadScenariosMissingFile(t *testing.T) {
	_, err := LoadScenarios(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScenarioParse)
}

func TestLoadScenariosFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "situations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validSituations), 0o644))

	scenarios, err := LoadScenarios(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)
}
