package vnovel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageClient is the diffusion backend: one prompt in, one rendered image out.
type ImageClient interface {
	ImageGenerate(ctx context.Context, prompt string, steps, width, height int, modelName string, progress progressor) ([]byte, error)
}

// NewImageClient picks the local SD-WebUI when a URL is configured and falls
// back to the AI Horde otherwise.
func NewImageClient(s Settings) (ImageClient, error) {
	if s.SDWebUIURL != "" {
		return NewWebUIClient(s.SDWebUIURL), nil
	}
	if s.HordeAPIKey != "" {
		return NewHordeClient(s.HordeAPIKey), nil
	}
	return nil, fmt.Errorf("no image backend configured: set SD_WEBUI_URL or HORDE_API_KEY")
}

// WebUIClient generates images through the Stable Diffusion WebUI txt2img API.
type WebUIClient struct {
	baseURL string
	http    *http.Client
}

// SDWebUIRequest represents the request structure for the Stable Diffusion WebUI API
type SDWebUIRequest struct {
	Prompt           string                 `json:"prompt"`
	NegativePrompt   string                 `json:"negative_prompt,omitempty"`
	Steps            int                    `json:"steps"`
	Width            int                    `json:"width"`
	Height           int                    `json:"height"`
	CFGScale         float64                `json:"cfg_scale,omitempty"`
	BatchSize        int                    `json:"batch_size,omitempty"`
	OverrideSettings map[string]interface{} `json:"override_settings,omitempty"`
}

// SDWebUIResponse represents the response structure from the Stable Diffusion WebUI API
type SDWebUIResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
	Error  string   `json:"error,omitempty"`
}

func NewWebUIClient(baseURL string) *WebUIClient {
	return &WebUIClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Minute, // SD generation can take a while
		},
	}
}

func (c *WebUIClient) ImageGenerate(ctx context.Context, prompt string, steps, width, height int, modelName string, progress progressor) ([]byte, error) {
	pr := progress
	if pr == nil {
		pr = &nullProgressor{}
	}

	pr.UpdateOutput(fmt.Sprintf("Starting image generation: prompt=%q, steps=%d, width=%d, height=%d",
		prompt, steps, width, height))

	requestData := SDWebUIRequest{
		Prompt:    prompt,
		Steps:     steps,
		Width:     width,
		Height:    height,
		CFGScale:  3.0,
		BatchSize: 1,
	}
	if modelName != "" {
		requestData.OverrideSettings = map[string]interface{}{
			"sd_model_checkpoint": modelName,
		}
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sdapi/v1/txt2img", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	pr.UpdateOutput("Sending request to SD-WebUI...")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var sdResponse SDWebUIResponse
	if err := json.Unmarshal(body, &sdResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(sdResponse.Images) == 0 {
		return nil, fmt.Errorf("no images generated")
	}

	imageBytes, err := base64.StdEncoding.DecodeString(sdResponse.Images[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("backend returned a zero-byte image")
	}

	pr.UpdateOutput("Image generation completed successfully")
	return imageBytes, nil
}
