// Package ocr consumes an external OCR service: given a screenshot,
// produce extracted text. Failures degrade the owning record to "no
// text" and never abort a run.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

// Engine extracts text from a screenshot image.
type Engine interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

const defaultModel = "deepseek-ai/DeepSeek-OCR"

// Client talks to an OCR HTTP service that accepts base64-encoded
// images and returns recognized text.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds an OCR client. A bounded per-call wait is enforced
// by the underlying HTTP client; a call that exceeds it counts as a
// failure for fallback purposes.
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("OCR base URL is required")
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type ocrRequest struct {
	Image        string `json:"image"`
	Model        string `json:"model"`
	OutputFormat string `json:"output_format"`
}

type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (c *Client) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	body, err := json.Marshal(ocrRequest{
		Image:        base64.StdEncoding.EncodeToString(data),
		Model:        c.model,
		OutputFormat: "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ocr", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OCR service returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("OCR service error: %s", parsed.Error)
	}

	return parsed.Text, nil
}

// Enrich extracts text for every record that does not have any yet.
// Extraction is pure and per-record, so it fans out over a bounded
// worker pool; results land on the records themselves, preserving the
// original order. Individual failures leave the record without text
// and invoke warn once.
func Enrich(ctx context.Context, records []*catalog.Record, e Engine, workers int, warn func(path string, err error)) {
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(records))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, r := range records {
		if r.Text != "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, r *catalog.Record) {
			defer wg.Done()
			defer func() { <-sem }()
			text, err := e.ExtractText(ctx, r.Path)
			if err != nil {
				errs[i] = err
				return
			}
			r.Text = text
		}(i, r)
	}
	wg.Wait()

	if warn == nil {
		return
	}
	for i, err := range errs {
		if err != nil {
			warn(records[i].Path, err)
		}
	}
}

// Stub returns canned text per base file name. For tests and offline
// development.
type Stub struct {
	Texts map[string]string
	Err   error
}

func (s *Stub) ExtractText(ctx context.Context, path string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Texts[filepath.Base(path)], nil
}
