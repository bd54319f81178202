// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"net/http"

	"github.com/pdiddy/deepresearch/pkg/types"
)

// openAIDefaultBase is the hosted chat completions API base.
const (
	openAIDefaultBase  = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAI is the hosted fallback backend. It is constructed only when a
// credential is present; without one NewOpenAI returns nil and the
// selector simply never sees it.
type OpenAI struct {
	BaseURL string
	Model   string
	APIKey  string
	Client  *http.Client
}

// NewOpenAI builds the hosted backend from config, filling defaults.
// Returns nil when no API key is configured.
func NewOpenAI(cfg types.BackendConfig) *OpenAI {
	if cfg.APIKey == "" {
		return nil
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIDefaultBase
	}
	model := cfg.Model
	if model == "" {
		model = openAIDefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGenTimeout
	}
	return &OpenAI{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  cfg.APIKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the backend identifier.
func (o *OpenAI) Name() string { return "openai" }

// Generate sends the conversation to the hosted endpoint. Quota errors
// carry ErrRateLimited via chatCompletion.
func (o *OpenAI) Generate(ctx context.Context, messages []Message) (string, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	return chatCompletion(ctx, client, o.BaseURL, o.APIKey, chatRequest{
		Model:       o.Model,
		Messages:    messages,
		Temperature: 0.7,
	})
}

// NewChainSelector wires the fallback chain from config: the local backend
// first, the hosted backend only when a credential is configured.
func NewChainSelector(local, hosted types.BackendConfig, useProbe bool) *Selector {
	s := &Selector{UseProbe: useProbe}
	s.Generators = append(s.Generators, NewLMStudio(local))
	if o := NewOpenAI(hosted); o != nil {
		s.Generators = append(s.Generators, o)
	}
	return s
}
