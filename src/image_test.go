package vnovel

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebUIClientGenerate(t *testing.T) {
	payload := []byte("fake-png-bytes")
	var got SDWebUIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sdapi/v1/txt2img", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(SDWebUIResponse{
			Images: []string{base64.StdEncoding.EncodeToString(payload)},
		})
	}))
	defer srv.Close()

	client := NewWebUIClient(srv.URL)
	data, err := client.ImageGenerate(context.Background(), "a lab at night", 28, 1280, 720, "", nil)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "a lab at night", got.Prompt)
	assert.Equal(t, 28, got.Steps)
	assert.Equal(t, 1280, got.Width)
	assert.Equal(t, 720, got.Height)
}

func TestWebUIClientModelOverride(t *testing.T) {
	var got SDWebUIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(SDWebUIResponse{
			Images: []string{base64.StdEncoding.EncodeToString([]byte("x"))},
		})
	}))
	defer srv.Close()

	_, err := NewWebUIClient(srv.URL).ImageGenerate(context.Background(), "p", 1, 8, 8, "anything-v5", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything-v5", got.OverrideSettings["sd_model_checkpoint"])
}

func TestWebUIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cuda out of memory", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewWebUIClient(srv.URL).ImageGenerate(context.Background(), "p", 1, 8, 8, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWebUIClientNoImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SDWebUIResponse{})
	}))
	defer srv.Close()

	_, err := NewWebUIClient(srv.URL).ImageGenerate(context.Background(), "p", 1, 8, 8, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no images")
}

func TestWebUIClientBadBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SDWebUIResponse{Images: []string{"@@not-base64@@"}})
	}))
	defer srv.Close()

	_, err := NewWebUIClient(srv.URL).ImageGenerate(context.Background(), "p", 1, 8, 8, "", nil)
	require.Error(t, err)
}
