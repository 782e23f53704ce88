package vnovel

import (
	"context"
	"fmt"
)

// Narrator turns a Scenario into a Narrative by querying the text backend and
// parsing its answer against the expected grammar. A malformed answer counts
// as a transient failure: the model is simply asked again, up to the retry
// budget.
type Narrator struct {
	client   TextClient
	retry    RetryPolicy
	progress progressor
}

func NewNarrator(client TextClient, s Settings, progress progressor) *Narrator {
	if progress == nil {
		progress = &nullProgressor{}
	}
	return &Narrator{
		client:   client,
		retry:    s.Retry(),
		progress: progress,
	}
}

// Generate produces the narrative for one scenario. The returned Narrative
// always carries exactly one consequence per answer.
func (g *Narrator) Generate(ctx context.Context, s Scenario) (Narrative, error) {
	systemPrompt := getNarrativeSystemPrompt(len(s.Answers))
	userPrompt := buildNarrativeUserPrompt(s)

	var narrative Narrative
	err := g.retry.Do(ctx, func() error {
		response, err := g.client.SendMessage(ctx, systemPrompt, userPrompt)
		if err != nil {
			return fmt.Errorf("querying backend: %w", err)
		}
		parsed, err := ParseNarrative(response, len(s.Answers))
		if err != nil {
			g.progress.UpdateOutput(fmt.Sprintf("Response did not match the expected format, asking again: %v", err))
			return fmt.Errorf("parsing response: %w", err)
		}
		narrative = parsed
		return nil
	})
	if err != nil {
		return Narrative{}, fmt.Errorf("%w: scenario %q: %v", ErrGeneration, s.Question, err)
	}
	return narrative, nil
}
