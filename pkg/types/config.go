// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "deepresearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search provider.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// TavilyAPIKey authenticates against the Tavily search API. When empty,
	// search strategies degrade to auto-generated fallback answers.
	TavilyAPIKey string `json:"tavily_api_key,omitempty" yaml:"tavily_api_key,omitempty"`

	// MaxResults is the maximum number of search items per query (default 7).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Workers bounds concurrent per-question retrieval (default 1, sequential).
	Workers int `json:"workers" yaml:"workers"`
}

// BackendConfig holds settings for one text-generation backend.
type BackendConfig struct {
	// BaseURL is the OpenAI-compatible API base (e.g. "http://localhost:1234/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier sent with each request.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates the request. The local backend accepts any value;
	// the hosted backend is skipped entirely when the key is empty.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds a full generation request (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ProbeTimeout bounds the one-token availability probe (default 1.5s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`
}

// WriterConfig holds settings for the synthesis stage.
type WriterConfig struct {
	// Polish enables the secondary-backend clarity pass on full documents.
	Polish bool `json:"polish" yaml:"polish"`
}

// SessionConfig holds settings for the session transcript store.
type SessionConfig struct {
	// Dir is the directory containing the sessions database (default "sessions/").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Local   BackendConfig `json:"local" yaml:"local"`
	Hosted  BackendConfig `json:"hosted" yaml:"hosted"`
	Writer  WriterConfig  `json:"writer" yaml:"writer"`
	Session SessionConfig `json:"session" yaml:"session"`
}
