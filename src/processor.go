package vnovel

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thmaillarb/vnovel-generation/renpy"
)

// Pipeline runs the whole generation flow: load scenarios, generate every
// narrative, render every image, assemble the project. Scenarios are
// processed strictly in file order and nothing runs concurrently; the
// diffusion backend owns a single GPU and the output order must match the
// input order anyway.
type Pipeline struct {
	settings Settings
	narrator *Narrator
	artist   *Artist
	log      zerolog.Logger
}

// NewPipeline wires the pipeline from explicit collaborators so tests can
// substitute mock backends.
func NewPipeline(s Settings, text TextClient, image ImageClient, log zerolog.Logger) *Pipeline {
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()
	progress := newLogProgressor(log)
	return &Pipeline{
		settings: s,
		narrator: NewNarrator(text, s, progress),
		artist:   NewArtist(image, s, progress),
		log:      log,
	}
}

// Run executes the pipeline end to end. Any error aborts the run before the
// project directory is touched; a partially generated project is never
// written out as if it were complete.
func (p *Pipeline) Run(ctx context.Context) error {
	scenarios, err := LoadScenarios(p.settings.SituationsFile)
	if err != nil {
		return err
	}
	p.log.Info().Int("scenarios", len(scenarios)).Str("file", p.settings.SituationsFile).Msg("loaded situations")

	narratives := make([]Narrative, 0, len(scenarios))
	for i, s := range scenarios {
		p.log.Info().Int("scenario", i+1).Str("question", s.Question).Msg("generating narrative")
		n, err := p.narrator.Generate(ctx, s)
		if err != nil {
			return fmt.Errorf("scenario %d: %w", i+1, err)
		}
		narratives = append(narratives, n)
	}

	plans := PlanAssets(narratives, p.settings)
	assets := make([]Asset, 0, len(plans))
	for _, plan := range plans {
		p.log.Info().Str("asset", plan.ID).Msg("generating image")
		a, err := p.artist.Render(ctx, plan)
		if err != nil {
			return err
		}
		assets = append(assets, a)
	}

	p.log.Info().Str("dir", p.settings.OutputDir).Msg("assembling project")
	compiler := renpy.NewProjectCompiler(p.settings.OutputDir, supervisorName, SupervisorSpriteID)
	if err := compiler.Compile(buildScenes(scenarios, narratives), toRenpyAssets(assets)); err != nil {
		return err
	}
	p.log.Info().Msg("project assembled")
	return nil
}

// buildScenes pairs each scenario with its narrative and background asset.
// Consequences are matched to answers strictly by index.
func buildScenes(scenarios []Scenario, narratives []Narrative) []renpy.Scene {
	scenes := make([]renpy.Scene, len(scenarios))
	for i, s := range scenarios {
		choices := make([]renpy.Choice, len(s.Answers))
		for j, answer := range s.Answers {
			choices[j] = renpy.Choice{
				Text:        answer,
				Consequence: narratives[i].Consequences[j],
				Correct:     j == s.CorrectAnswer,
			}
		}
		scenes[i] = renpy.Scene{
			Question:   s.Question,
			Intro:      narratives[i].Intro,
			Background: BackgroundID(i + 1),
			Choices:    choices,
		}
	}
	return scenes
}

func toRenpyAssets(assets []Asset) []renpy.Asset {
	out := make([]renpy.Asset, len(assets))
	for i, a := range assets {
		out[i] = renpy.Asset{ID: a.ID, PNG: a.PNG}
	}
	return out
}
