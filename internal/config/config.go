// Package config loads pipeline options from the environment, binding
// each field to its own env var via viper.
package config

import (
	"github.com/spf13/viper"
)

// Config is the full set of environment-driven options the pipeline
// reads. Credentials are presence-only: their value is never logged or
// inspected beyond emptiness.
type Config struct {
	UseParallelEvidence bool
	UseEEGPhase1        bool

	MaxClaimWorkers     int
	MaxEvaluatorWorkers int
	MaxSearchWorkers    int
	MaxExtractWorkers   int

	FanoutDeadlineSeconds int
	ClaimDeadlineSeconds  int

	// Provider credentials, presence-only semantics.
	OpenAIAPIKey       string
	AnthropicAPIKey    string
	GoogleAIAPIKey     string
	SearchAPIKeyBing   string
	SearchAPIKeyGoogle string
	SearchAPIKeyBrave  string
}

// Default concurrency widths and stage deadlines.
const (
	DefaultMaxClaimWorkers     = 4
	DefaultMaxEvaluatorWorkers = 2
	DefaultMaxSearchWorkers    = 4
	DefaultMaxExtractWorkers   = 6
	DefaultFanoutDeadlineSecs  = 45
	DefaultClaimDeadlineSecs   = 120
)

// Load reads the process environment into a Config, applying defaults
// for anything unset. Safe to call more than once; each call
// builds an independent viper instance so it never picks up state left
// by a previous Load.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("use_parallel_evidence", true)
	v.SetDefault("use_eeg_phase_1", true)
	v.SetDefault("max_claim_workers", DefaultMaxClaimWorkers)
	v.SetDefault("max_evaluator_workers", DefaultMaxEvaluatorWorkers)
	v.SetDefault("max_search_workers", DefaultMaxSearchWorkers)
	v.SetDefault("max_extract_workers", DefaultMaxExtractWorkers)
	v.SetDefault("fanout_deadline_seconds", DefaultFanoutDeadlineSecs)
	v.SetDefault("claim_deadline_seconds", DefaultClaimDeadlineSecs)

	bindings := map[string][]string{
		"use_parallel_evidence":   {"USE_PARALLEL_EVIDENCE"},
		"use_eeg_phase_1":         {"USE_EEG_PHASE_1"},
		"max_claim_workers":       {"MAX_CLAIM_WORKERS"},
		"max_evaluator_workers":   {"MAX_EVALUATOR_WORKERS"},
		"max_search_workers":      {"MAX_SEARCH_WORKERS"},
		"max_extract_workers":     {"MAX_EXTRACT_WORKERS"},
		"fanout_deadline_seconds": {"FANOUT_DEADLINE_SECONDS"},
		"claim_deadline_seconds":  {"CLAIM_DEADLINE_SECONDS"},
		"openai_api_key":          {"OPENAI_API_KEY"},
		"anthropic_api_key":       {"ANTHROPIC_API_KEY"},
		"google_ai_api_key":       {"GOOGLE_AI_API_KEY"},
		"search_api_key_bing":     {"BING_SEARCH_API_KEY"},
		"search_api_key_google":   {"GOOGLE_SEARCH_API_KEY"},
		"search_api_key_brave":    {"BRAVE_SEARCH_API_KEY"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, err
		}
	}

	return &Config{
		UseParallelEvidence: v.GetBool("use_parallel_evidence"),
		UseEEGPhase1:        v.GetBool("use_eeg_phase_1"),

		MaxClaimWorkers:     v.GetInt("max_claim_workers"),
		MaxEvaluatorWorkers: v.GetInt("max_evaluator_workers"),
		MaxSearchWorkers:    v.GetInt("max_search_workers"),
		MaxExtractWorkers:   v.GetInt("max_extract_workers"),

		FanoutDeadlineSeconds: v.GetInt("fanout_deadline_seconds"),
		ClaimDeadlineSeconds:  v.GetInt("claim_deadline_seconds"),

		OpenAIAPIKey:       v.GetString("openai_api_key"),
		AnthropicAPIKey:    v.GetString("anthropic_api_key"),
		GoogleAIAPIKey:     v.GetString("google_ai_api_key"),
		SearchAPIKeyBing:   v.GetString("search_api_key_bing"),
		SearchAPIKeyGoogle: v.GetString("search_api_key_google"),
		SearchAPIKeyBrave:  v.GetString("search_api_key_brave"),
	}, nil
}
