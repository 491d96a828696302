package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/text/language"
)

type TTSClient interface {
	// Synthesize returns encoded audio and its MIME type.
	Synthesize(ctx context.Context, text string, tag language.Tag) ([]byte, string, error)
}

type httpTTSClient struct {
	url        string
	voice      string
	httpClient *http.Client
}

func NewHTTPTTSClient(url, voice string) TTSClient {
	return &httpTTSClient{
		url:   url,
		voice: voice,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice,omitempty"`
}

func (c *httpTTSClient) Synthesize(ctx context.Context, text string, tag language.Tag) ([]byte, string, error) {
	jsonBody, err := json.Marshal(ttsRequest{Text: text, Language: tag.String(), Voice: c.voice})
	if err != nil {
		return nil, "", fmt.Errorf("marshal tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("tts error: %s - %s", resp.Status, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read tts audio: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}
	return audio, mime, nil
}
