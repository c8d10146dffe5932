// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "proposal-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderBackend identifies a text-completion backend.
type ProviderBackend string

const (
	ProviderClaude ProviderBackend = "claude"
	ProviderOpenAI ProviderBackend = "openai"
	ProviderGemini ProviderBackend = "gemini"
)

// ProviderConfig holds settings for the text-completion provider adapter.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the completion backend: claude, openai, or gemini.
	Backend ProviderBackend `json:"backend" yaml:"backend"`

	// Model is the model identifier; each backend has its own default.
	Model string `json:"model" yaml:"model"`

	// APIKey is the credential for the selected backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature passed to each completion call
	// unless the caller overrides it.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens bounds the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// SearchConfig holds settings for the academic search adapter.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of findings to request per backend (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableArxiv controls whether the arXiv backend is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// EnableSemanticScholar controls whether the Semantic Scholar backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// GenerationStrategy selects how the idea generation stage builds a proposal.
type GenerationStrategy string

const (
	// StrategyOneCall issues a single combined prompt.
	StrategyOneCall GenerationStrategy = "one-call"

	// StrategyTwoCall first generates a research question, then a separate
	// solution proposal for it.
	StrategyTwoCall GenerationStrategy = "two-call"
)

// GenerationConfig holds settings for the idea generation stage.
type GenerationConfig struct {
	// Strategy selects one-call or two-call generation (default one-call).
	Strategy GenerationStrategy `json:"strategy" yaml:"strategy"`
}

// LiteratureConfig holds settings for the literature review stage.
type LiteratureConfig struct {
	// CompressQuery routes the derived search text through the completion
	// provider to produce a short keyword query before searching.
	CompressQuery bool `json:"compress_query" yaml:"compress_query"`
}

// ImprovementConfig holds settings for the improvement stage.
type ImprovementConfig struct {
	// PreserveResearchQuestion carries the research question over verbatim
	// on user-feedback revisions instead of letting the model rewrite it.
	PreserveResearchQuestion bool `json:"preserve_research_question" yaml:"preserve_research_question"`
}

// StoreConfig holds settings for the optional session archive.
type StoreConfig struct {
	// Dir is the directory holding the sqlite database (default "sessions").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Provider    ProviderConfig    `json:"provider" yaml:"provider"`
	Search      SearchConfig      `json:"search" yaml:"search"`
	Generation  GenerationConfig  `json:"generation" yaml:"generation"`
	Literature  LiteratureConfig  `json:"literature" yaml:"literature"`
	Improvement ImprovementConfig `json:"improvement" yaml:"improvement"`
	Store       StoreConfig       `json:"store" yaml:"store"`
}

// DefaultPipelineConfig returns the configuration used when no file or flags
// override it.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Provider: ProviderConfig{
			HTTPConfig:  HTTPConfig{Timeout: 60 * time.Second, UserAgent: "proposal-engine/0.1"},
			Backend:     ProviderClaude,
			Temperature: 0.5,
			MaxTokens:   4096,
		},
		Search: SearchConfig{
			HTTPConfig:            HTTPConfig{Timeout: 30 * time.Second, UserAgent: "proposal-engine/0.1"},
			MaxResults:            5,
			EnableArxiv:           true,
			EnableSemanticScholar: true,
		},
		Generation: GenerationConfig{Strategy: StrategyOneCall},
		Improvement: ImprovementConfig{
			PreserveResearchQuestion: true,
		},
		Store: StoreConfig{Dir: "sessions"},
	}
}
