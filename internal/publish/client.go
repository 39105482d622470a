package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client pushes rendered chapter bodies to a pathstore-compatible KV
// service. Chapters are stored under books/{bookID}/{chapterPath}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chapterRequest struct {
	Value  string `json:"value"`
	Source string `json:"source,omitempty"`
}

// PutChapter stores one rendered chapter body.
func (c *Client) PutChapter(ctx context.Context, bookID, chapterPath, body string) error {
	payload, err := json.Marshal(chapterRequest{
		Value:  body,
		Source: "numbook",
	})
	if err != nil {
		return fmt.Errorf("marshal chapter: %w", err)
	}

	key := "books/" + bookID + "/" + chapterPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/kv/"+key, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put chapter: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put chapter %s: status %d: %s", key, resp.StatusCode, string(respBody))
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
