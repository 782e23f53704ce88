package vnovel

import (
	"context"
	"fmt"

	"github.com/opd-ai/horde"
)

// HordeClient generates images through the crowdsourced AI Horde. Used as the
// fallback when no local SD-WebUI is configured; expect queueing delays.
type HordeClient struct {
	*horde.Client
}

func NewHordeClient(apiKey string) *HordeClient {
	return &HordeClient{
		Client: horde.NewClient(apiKey),
	}
}

func (c *HordeClient) ImageGenerate(ctx context.Context, prompt string, steps, width, height int, modelName string, progress progressor) ([]byte, error) {
	pr := progress
	if pr == nil {
		pr = &nullProgressor{}
	}

	if steps == 0 {
		steps = horde.DefaultSteps
	}
	if width == 0 {
		width = horde.DefaultWidth
	}
	if height == 0 {
		height = horde.DefaultHeight
	}
	if modelName == "" {
		modelName = horde.DefaultModel
	}
	pr.UpdateOutput(fmt.Sprintf("Starting image generation: prompt=%q, steps=%d, width=%d, height=%d",
		prompt, steps, width, height))

	req := horde.GenerationRequest{
		Prompt: prompt,
		Params: horde.Params{
			Steps:     steps,
			Width:     width,
			Height:    height,
			ModelName: modelName,
		},
	}

	pr.UpdateOutput("Submitting generation request...")
	resp, err := c.RequestGeneration(req)
	if err != nil {
		return nil, fmt.Errorf("requesting generation: %w", err)
	}
	pr.UpdateOutput(fmt.Sprintf("Request accepted, got ID: %s", resp.ID))

	pr.UpdateOutput("Waiting for generation to complete...")
	status, err := c.WaitForCompletion(resp.ID)
	if err != nil {
		return nil, fmt.Errorf("waiting for completion: %w", err)
	}
	if len(status.Generation) == 0 {
		return nil, fmt.Errorf("no results returned")
	}

	pr.UpdateOutput("Downloading generated image...")
	imageData, err := c.DownloadImage(status.Generation[0].Image)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("backend returned a zero-byte image")
	}
	pr.UpdateOutput(fmt.Sprintf("Successfully downloaded image: %d bytes", len(imageData)))

	return imageData, nil
}
