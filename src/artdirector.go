package vnovel

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
)

// AssetPlan names one image to generate: its stable identifier (referenced
// from the script), the prompt, and the render dimensions.
type AssetPlan struct {
	ID     string
	Prompt string
	Width  int
	Height int
}

// BackgroundID is the deterministic identifier of a scenario's background,
// derived from the scenario's 1-based position in the situations file.
func BackgroundID(index int) string {
	return fmt.Sprintf("bg_s%02d", index)
}

// SupervisorSpriteID identifies the recurring supervisor sprite.
const SupervisorSpriteID = "supervisor"

// PlanAssets maps scenarios and their narratives to the images the project
// needs: one background per scenario (prompted by the generated scene
// description) and a single shared supervisor sprite. The mapping is kept in
// one place so the identifiers the assembler consumes are easy to audit.
func PlanAssets(narratives []Narrative, s Settings) []AssetPlan {
	plans := make([]AssetPlan, 0, len(narratives)+1)
	plans = append(plans, AssetPlan{
		ID:     SupervisorSpriteID,
		Prompt: getSupervisorSpritePrompt(),
		Width:  s.SpriteWidth,
		Height: s.SpriteHeight,
	})
	for i, n := range narratives {
		plans = append(plans, AssetPlan{
			ID:     BackgroundID(i + 1),
			Prompt: buildBackgroundPrompt(n.Scene),
			Width:  s.ImageWidth,
			Height: s.ImageHeight,
		})
	}
	return plans
}

// Artist renders asset plans one at a time. Diffusion is the heaviest step of
// the run and the backend owns a single GPU, so requests are never issued
// concurrently. Identical prompts within a run are served from a cache
// instead of hitting the backend again.
type Artist struct {
	client   ImageClient
	model    string
	steps    int
	retry    RetryPolicy
	cache    *gocache.Cache
	progress progressor
}

func NewArtist(client ImageClient, s Settings, progress progressor) *Artist {
	if progress == nil {
		progress = &nullProgressor{}
	}
	return &Artist{
		client:   client,
		model:    s.ImageModel,
		steps:    s.ImageSteps,
		retry:    s.Retry(),
		cache:    gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		progress: progress,
	}
}

// Render produces the image for one plan, retrying transient failures.
func (a *Artist) Render(ctx context.Context, plan AssetPlan) (Asset, error) {
	key := fmt.Sprintf("%dx%d|%s", plan.Width, plan.Height, plan.Prompt)
	if cached, ok := a.cache.Get(key); ok {
		a.progress.UpdateOutput(fmt.Sprintf("Reusing cached image for %s", plan.ID))
		return Asset{ID: plan.ID, PNG: cached.([]byte)}, nil
	}

	var png []byte
	err := a.retry.Do(ctx, func() error {
		data, err := a.client.ImageGenerate(ctx, plan.Prompt, a.steps, plan.Width, plan.Height, a.model, a.progress)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("backend returned a zero-byte image")
		}
		png = data
		return nil
	})
	if err != nil {
		return Asset{}, fmt.Errorf("%w: asset %s: %v", ErrGeneration, plan.ID, err)
	}

	a.cache.Set(key, png, gocache.DefaultExpiration)
	return Asset{ID: plan.ID, PNG: png}, nil
}
