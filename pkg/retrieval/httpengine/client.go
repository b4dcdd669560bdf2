package httpengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"robotics-tutor-be/pkg/retrieval"
	"robotics-tutor-be/pkg/store"
)

// Client talks to an external retrieval engine over JSON.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ retrieval.Retriever = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type retrieveRequest struct {
	Query     string  `json:"query"`
	TopK      int     `json:"top_k"`
	Threshold float64 `json:"threshold"`
}

type retrieveResponse struct {
	Results []store.RetrievedChunk `json:"results"`
}

func (c *Client) Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]store.RetrievedChunk, error) {
	payloadBytes, err := json.Marshal(retrieveRequest{
		Query:     query,
		TopK:      topK,
		Threshold: threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/retrieve"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieval request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieval error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed retrieveResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Results, nil
}
