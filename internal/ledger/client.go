// Package ledger talks to the remote ledger-backed checkers service. The
// service exposes a GraphQL surface over plain HTTP POST; mutations return an
// opaque acknowledgement and their effect is only observable through a later
// game query, so callers poll after mutating.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the service has no game with the given id.
var ErrNotFound = errors.New("ledger: game not found")

// Client issues queries and mutations against one service endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
	log      *zap.Logger
}

// New builds a client for the given GraphQL endpoint.
func New(endpoint string, log *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one GraphQL document and decodes the data field into out.
// Transport and GraphQL-level errors are both surfaced as errors; no local
// state is touched on failure.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("ledger: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ledger: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger: unexpected status %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("ledger: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("ledger: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("ledger: decode data: %w", err)
		}
	}
	return nil
}

// mutate runs a mutation and discards its payload: mutations acknowledge
// opaquely and the new state must be learned from a subsequent query.
func (c *Client) mutate(ctx context.Context, name, query string, vars map[string]any) error {
	if err := c.do(ctx, query, vars, nil); err != nil {
		return err
	}
	c.log.Debug("mutation acknowledged", zap.String("mutation", name))
	return nil
}
