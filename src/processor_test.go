package vnovel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTextClient replays canned responses.
type mockTextClient struct {
	calls     int
	responses []string
	err       error
}

func (m *mockTextClient) SendMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("no canned response left")
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

// mockImageClient returns a fixed PNG payload and counts requests.
type mockImageClient struct {
	calls int
	data  []byte
	err   error
}

func (m *mockImageClient) ImageGenerate(ctx context.Context, prompt string, steps, width, height int, modelName string, progress progressor) ([]byte, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func testSettings(t *testing.T, situations string) Settings {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "situations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(situations), 0o644))
	return Settings{
		TextBackend:    BackendOllama,
		ImageWidth:     64,
		ImageHeight:    64,
		SpriteWidth:    32,
		SpriteHeight:   48,
		ImageSteps:     1,
		MaxAttempts:    2,
		BaseRetryDelay: time.Millisecond,
		SituationsFile: path,
		OutputDir:      filepath.Join(dir, "project"),
	}
}

const narrativeResponse = `intro: Dr. Lenz pulls up your results and sighs.
scene: cramped university lab at night, monitors glowing
1: You change the numbers. The paper is published, then retracted, and your career never recovers.
2: You report the data as it is. The discussion section gets harder to write, and easier to defend.`

const narrativeResponseThreeAnswers = `intro: A colleague corners you near the printer.
scene: cluttered shared office, late afternoon light
1: You add the name. Authorship on your next paper gets negotiated the same way.
2: You refuse politely. The conversation is awkward for a week and forgotten in a month.
3: Your supervisor backs you up and the lab adopts a written authorship policy.`

func TestPipelineEndToEnd(t *testing.T) {
	settings := testSettings(t, validSituations)
	text := &mockTextClient{responses: []string{narrativeResponse, narrativeResponseThreeAnswers}}
	image := &mockImageClient{data: []byte("not-a-real-png")}

	pipeline := NewPipeline(settings, text, image, zerolog.Nop())
	require.NoError(t, pipeline.Run(context.Background()))

	script, err := os.ReadFile(filepath.Join(settings.OutputDir, "game", "script.rpy"))
	require.NoError(t, err)
	content := string(script)

	// Both answer choices are offered and each leads to its own branch.
	assert.Contains(t, content, `"Yes":`)
	assert.Contains(t, content, `"No":`)
	assert.Contains(t, content, "jump scenario_01_answer_1")
	assert.Contains(t, content, "jump scenario_01_answer_2")
	assert.Contains(t, content, "label scenario_01_answer_1:")
	assert.Contains(t, content, "label scenario_01_answer_2:")
	assert.Contains(t, content, "retracted")
	assert.Contains(t, content, "easier to defend")

	// The script references a generated image asset that exists on disk.
	assert.Contains(t, content, "scene bg_s01")
	_, err = os.Stat(filepath.Join(settings.OutputDir, "game", "images", "bg_s01.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(settings.OutputDir, "game", "images", "supervisor.png"))
	assert.NoError(t, err)

	// One text request per scenario, one image per plan (sprite + 2 backgrounds).
	assert.Equal(t, 2, text.calls)
	assert.Equal(t, 3, image.calls)
}

func TestPipelineRejectsBadConfigBeforeAnyBackendCall(t *testing.T) {
	settings := testSettings(t, `situations:
  - question: "Q"
    answers: []
    correct_answer: 0
`)
	text := &mockTextClient{responses: []string{narrativeResponse}}
	image := &mockImageClient{data: []byte("png")}

	pipeline := NewPipeline(settings, text, image, zerolog.Nop())
	err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScenarioInvalid)
	assert.Zero(t, text.calls, "no text backend call should be made for an invalid config")
	assert.Zero(t, image.calls, "no image backend call should be made for an invalid config")
}

func TestPipelineAbortsOnUnparsableNarrative(t *testing.T) {
	settings := testSettings(t, validSituations)
	text := &mockTextClient{responses: []string{"I would love to help, but first let me explain."}}
	image := &mockImageClient{data: []byte("png")}

	pipeline := NewPipeline(settings, text, image, zerolog.Nop())
	err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	// The failure names the offending scenario.
	assert.Contains(t, err.Error(), "Should you falsify data?")
	// Every retry attempt consumed the same bad response.
	assert.Equal(t, settings.MaxAttempts, text.calls)
	// No half-written project is left behind.
	_, statErr := os.Stat(settings.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
	// The art stage never ran.
	assert.Zero(t, image.calls)
}

func TestPipelineAbortsOnImageFailure(t *testing.T) {
	settings := testSettings(t, validSituations)
	text := &mockTextClient{responses: []string{narrativeResponse, narrativeResponseThreeAnswers}}
	image := &mockImageClient{err: fmt.Errorf("connection refused")}

	pipeline := NewPipeline(settings, text, image, zerolog.Nop())
	err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), SupervisorSpriteID)
	_, statErr := os.Stat(settings.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArtistCachesIdenticalPrompts(t *testing.T) {
	settings := testSettings(t, validSituations)
	image := &mockImageClient{data: []byte("png")}
	artist := NewArtist(image, settings, nil)

	plan := AssetPlan{ID: "bg_s01", Prompt: "a lab", Width: 64, Height: 64}
	_, err := artist.Render(context.Background(), plan)
	require.NoError(t, err)

	plan.ID = "bg_s02" // same prompt, different identifier
	_, err = artist.Render(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 1, image.calls)
}

func TestArtistRejectsZeroByteImage(t *testing.T) {
	settings := testSettings(t, validSituations)
	image := &mockImageClient{data: []byte{}}
	artist := NewArtist(image, settings, nil)

	_, err := artist.Render(context.Background(), AssetPlan{ID: "bg_s01", Prompt: "a lab", Width: 64, Height: 64})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Equal(t, settings.MaxAttempts, image.calls)
}

func TestPlanAssetsDeterministicIdentifiers(t *testing.T) {
	settings := testSettings(t, validSituations)
	narratives := []Narrative{
		{Scene: "a lab", Consequences: []string{"a", "b"}},
		{Scene: "an office", Consequences: []string{"a", "b"}},
	}
	plans := PlanAssets(narratives, settings)
	require.Len(t, plans, 3)
	assert.Equal(t, SupervisorSpriteID, plans[0].ID)
	assert.Equal(t, "bg_s01", plans[1].ID)
	assert.Equal(t, "bg_s02", plans[2].ID)
	assert.Contains(t, plans[1].Prompt, "a lab")
	assert.Contains(t, plans[2].Prompt, "an office")
}
