// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research turns queries into answers. It wraps a web search
// provider and the backend selector behind a set of interchangeable
// retrieval strategies that all produce the same Answer shape and never
// fail: any provider or backend fault degrades to a fallback value.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/deepresearch/internal/backend"
	"github.com/pdiddy/deepresearch/internal/links"
	"github.com/pdiddy/deepresearch/pkg/types"
)

// Item is a single result from the search provider.
type Item struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url,omitempty"`
}

// Provider searches the web. The Tavily client implements this; tests
// supply stubs.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Item, error)
}

// Client holds the retrieval dependencies shared by all strategies.
type Client struct {
	// Provider is the web search backend. Nil when unconfigured; every
	// web-backed strategy then returns its fallback answer.
	Provider Provider

	// Selector is the generation fallback chain for model-answered search.
	Selector *backend.Selector

	// MaxResults bounds provider items per plain web search (default 7).
	MaxResults int
}

const defaultMaxResults = 7

// Fallback is the answer returned when the search provider is
// unconfigured, unreachable, or returns an unusable response.
func Fallback(query string) types.Answer {
	return types.NewAnswer("Auto-generated explanation for: " + query)
}

// WebSearch runs a plain web search and collects content, unique source
// URLs, and unique image URLs in first-seen order.
func (c *Client) WebSearch(ctx context.Context, query string) types.Answer {
	n := c.MaxResults
	if n <= 0 {
		n = defaultMaxResults
	}
	return c.webSearch(ctx, query, n)
}

func (c *Client) webSearch(ctx context.Context, query string, maxResults int) types.Answer {
	if c.Provider == nil {
		return Fallback(query)
	}

	items, err := c.Provider.Search(ctx, query, maxResults)
	if err != nil {
		return Fallback(query)
	}

	var parts, sources, images []string
	for _, item := range items {
		if item.Content != "" {
			parts = append(parts, item.Content)
		}
		if item.URL != "" {
			sources = append(sources, item.URL)
		}
		if item.ImageURL != "" {
			images = append(images, item.ImageURL)
		}
	}

	answer := types.NewAnswer(strings.TrimSpace(strings.Join(parts, "\n\n")))
	answer.Sources = append(answer.Sources, links.Dedupe(sources)...)
	answer.Images = append(answer.Images, links.Dedupe(images)...)
	return answer
}

// ModelAnswer answers the query with the backend selector instead of the
// web. Sources and images are empty; total backend failure yields marked
// text, never an error.
func (c *Client) ModelAnswer(ctx context.Context, query string) types.Answer {
	if c.Selector == nil {
		return types.NewAnswer(backend.FailureText(fmt.Errorf("no backends configured")))
	}
	reply, err := c.Selector.GenerateText(ctx, query)
	if err != nil {
		return types.NewAnswer(backend.FailureText(err))
	}
	return types.NewAnswer(reply.Text)
}
