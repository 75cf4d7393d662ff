// Package fraud scores a claim's field record with an external model server.
package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultThreshold is the positive-class probability at which a claim is flagged.
const DefaultThreshold = 0.05

// Scorer classifies a field record as fraudulent (1) or not (0).
type Scorer interface {
	Score(ctx context.Context, fields map[string]int) (int, error)
}

// HTTPScorer posts feature rows to a model-serving endpoint in the
// dataframe_split layout and reads back the positive-class probability.
type HTTPScorer struct {
	endpoint  string
	columns   []string
	threshold float64
	client    *http.Client
}

func NewHTTPScorer(endpoint string, columns []string, threshold float64, timeout time.Duration) *HTTPScorer {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &HTTPScorer{
		endpoint:  endpoint,
		columns:   columns,
		threshold: threshold,
		client:    &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	DataframeSplit dataframeSplit `json:"dataframe_split"`
}

type dataframeSplit struct {
	Columns []string `json:"columns"`
	Data    [][]int  `json:"data"`
}

type scoreResponse struct {
	Predictions []json.RawMessage `json:"predictions"`
}

func (s *HTTPScorer) Score(ctx context.Context, fields map[string]int) (int, error) {
	body, err := json.Marshal(scoreRequest{DataframeSplit: dataframeSplit{
		Columns: s.columns,
		Data:    [][]int{Features(s.columns, fields)},
	}})
	if err != nil {
		return 0, fmt.Errorf("failed to encode features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("model server returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(out.Predictions) == 0 {
		return 0, fmt.Errorf("model response has no predictions")
	}

	p, err := positiveProbability(out.Predictions[0])
	if err != nil {
		return 0, err
	}
	if p >= s.threshold {
		return 1, nil
	}
	return 0, nil
}

// positiveProbability accepts a bare probability or a [p0, p1] pair.
func positiveProbability(raw json.RawMessage) (float64, error) {
	var p float64
	if err := json.Unmarshal(raw, &p); err == nil {
		return p, nil
	}
	var pair []float64
	if err := json.Unmarshal(raw, &pair); err == nil && len(pair) == 2 {
		return pair[1], nil
	}
	return 0, fmt.Errorf("unexpected prediction %s", raw)
}
