// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/pdiddy/deepresearch/pkg/types"
)

// Defaults for the local LM Studio endpoint.
const (
	lmStudioDefaultBase  = "http://localhost:1234/v1"
	lmStudioDefaultModel = "qwen2.5-7b-instruct"
	lmStudioAPIKey       = "lm-studio"

	defaultGenTimeout   = 120 * time.Second
	defaultProbeTimeout = 1500 * time.Millisecond
)

// LMStudio is the local OpenAI-compatible backend. LM Studio accepts any
// API key, so none is configurable; availability alone decides whether it
// serves a request.
type LMStudio struct {
	BaseURL      string
	Model        string
	Client       *http.Client
	ProbeTimeout time.Duration
}

// NewLMStudio builds a local backend from config, filling defaults.
func NewLMStudio(cfg types.BackendConfig) *LMStudio {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = lmStudioDefaultBase
	}
	model := cfg.Model
	if model == "" {
		model = lmStudioDefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultGenTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &LMStudio{
		BaseURL:      baseURL,
		Model:        model,
		Client:       &http.Client{Timeout: timeout},
		ProbeTimeout: probeTimeout,
	}
}

// Name returns the backend identifier.
func (l *LMStudio) Name() string { return "lm_studio" }

// Generate sends the conversation to the local endpoint.
func (l *LMStudio) Generate(ctx context.Context, messages []Message) (string, error) {
	return chatCompletion(ctx, l.client(), l.BaseURL, lmStudioAPIKey, chatRequest{
		Model:       l.Model,
		Messages:    messages,
		Temperature: 0.7,
	})
}

// Probe sends a one-token request under a short deadline to check whether
// the local endpoint is serving at all. The probe timeout is much shorter
// than the generation timeout so an offline endpoint falls through to the
// hosted backend quickly.
func (l *LMStudio) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, l.probeTimeout())
	defer cancel()

	_, err := chatCompletion(probeCtx, l.client(), l.BaseURL, lmStudioAPIKey, chatRequest{
		Model:     l.Model,
		Messages:  UserMessage("ping"),
		MaxTokens: 1,
	})
	return err == nil
}

func (l *LMStudio) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

func (l *LMStudio) probeTimeout() time.Duration {
	if l.ProbeTimeout > 0 {
		return l.ProbeTimeout
	}
	return defaultProbeTimeout
}
