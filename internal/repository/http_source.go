package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// maxWordListBytes caps the body read from a remote word list.
const maxWordListBytes = 8 << 20

// HTTPSource fetches a JSON word list over HTTP.
type HTTPSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPSource creates a new HTTPSource. A nil client uses http.DefaultClient.
func NewHTTPSource(url string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client, timeout: timeout}
}

func (s *HTTPSource) Name() string {
	return "http " + s.url
}

// Fetch downloads the list. Any non-2xx response is a failure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxWordListBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return decodeWords(data)
}
