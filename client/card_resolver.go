// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/a2a-exchange"
)

// AgentCardPath is the well-known path the agent card is published at.
const AgentCardPath = "/.well-known/agent.json"

// CardResolver fetches the agent card published by an exchange.
type CardResolver struct {
	hc      *http.Client
	baseURL string
}

// NewCardResolver returns a resolver for the exchange at baseURL.
// A nil hc selects [http.DefaultClient].
func NewCardResolver(baseURL string, hc *http.Client) *CardResolver {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &CardResolver{
		hc:      hc,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// AgentCard fetches the card from relativePath. An empty path selects [AgentCardPath].
func (r *CardResolver) AgentCard(ctx context.Context, relativePath string) (*a2a.AgentCard, error) {
	if relativePath == "" {
		relativePath = AgentCardPath
	}
	targetURL := r.baseURL + "/" + strings.TrimLeft(relativePath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch agent card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch agent card from %s: %w", targetURL, &HTTPError{StatusCode: resp.StatusCode})
	}

	var card a2a.AgentCard
	if err := json.UnmarshalRead(resp.Body, &card); err != nil {
		return nil, fmt.Errorf("decode agent card: %w", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}
	return &card, nil
}
