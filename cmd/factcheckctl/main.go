// Command factcheckctl is a thin demo driver for the fact-checking
// core: it parses claim texts from flags, runs them through
// orchestrator.Run, and prints the resulting TrustCapsule as JSON. It
// implements none of the out-of-scope surfaces (no HTTP server, no
// OCR, no persistence) — those live in an outer layer this module
// does not provide.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"factcheck/internal/claim"
	"factcheck/internal/config"
	"factcheck/internal/evaluator"
	"factcheck/internal/fanout"
	"factcheck/internal/llm"
	"factcheck/internal/logging"
	"factcheck/internal/orchestrator"
	"factcheck/internal/resourcepool"
	"factcheck/internal/search"
	"factcheck/internal/strategy"
)

var (
	claimsFlag string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "factcheckctl",
		Short: "Fact-check claims and print a trust capsule",
		Long: `factcheckctl runs claim texts through the full fact-checking
pipeline (strategy generation, evidence gathering, dual evaluation,
consensus, scoring) and prints the resulting trust capsule as JSON.`,
		RunE: run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&claimsFlag, "claims", "", "semicolon-separated claim texts to fact-check")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.MarkFlagRequired("claims")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logging.Initialize(debug, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	orch, err := build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	var claims []claim.Claim
	for i, text := range strings.Split(claimsFlag, ";") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		claims = append(claims, claim.Claim{Text: text, Tier: claim.TierPrimary, Priority: i})
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claim texts given")
	}

	capsule, err := orch.Run(ctx, claims)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	out, err := json.MarshalIndent(capsule, "", " ")
	if err != nil {
		return fmt.Errorf("marshal capsule: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func build(ctx context.Context, cfg *config.Config) (*orchestrator.Orchestrator, error) {
	pool := resourcepool.New("factcheckctl", resourcepool.Credentials{
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		SearchProviders: map[string]string{
			"bing":   cfg.SearchAPIKeyBing,
			"google": cfg.SearchAPIKeyGoogle,
			"brave":  cfg.SearchAPIKeyBrave,
		},
	}, 8*time.Second)

	client := pool.Lease(0).HTTPClient

	var providers []search.Provider
	if cfg.SearchAPIKeyBing != "" {
		providers = append(providers, &search.BingProvider{APIKey: cfg.SearchAPIKeyBing, Client: client, Limiter: pool.Limiter("bing", 3, 3)})
	}
	if cfg.SearchAPIKeyGoogle != "" {
		providers = append(providers, &search.GoogleCSEProvider{APIKey: cfg.SearchAPIKeyGoogle, Client: client, Limiter: pool.Limiter("google", 3, 3)})
	}
	if cfg.SearchAPIKeyBrave != "" {
		providers = append(providers, &search.BraveProvider{APIKey: cfg.SearchAPIKeyBrave, Client: client, Limiter: pool.Limiter("brave", 3, 3)})
	}
	chain := search.NewChain(providers...)

	fan := fanout.New(chain, client)
	fan.MaxSearchWorkers = cfg.MaxSearchWorkers
	fan.MaxExtractWorkers = cfg.MaxExtractWorkers
	fan.FanoutDeadline = time.Duration(cfg.FanoutDeadlineSeconds) * time.Second
	fan.LeaseClient = func(slot int) fanout.HTTPDoer {
		return pool.Lease(slot + 1).HTTPClient
	}

	primaryLLM, err := llm.New(ctx, llm.Config{Provider: "openai", APIKey: cfg.OpenAIAPIKey, Model: "gpt-4o-mini"})
	if err != nil {
		return nil, err
	}
	secondaryLLM, err := llm.New(ctx, llm.Config{Provider: "openai", APIKey: cfg.OpenAIAPIKey, Model: "gpt-4o"})
	if err != nil {
		return nil, err
	}

	dual := evaluator.NewDual(
		evaluator.New(evaluator.EvaluatorA, primaryLLM),
		evaluator.New(evaluator.EvaluatorB, secondaryLLM),
	)
	dual.MaxWorkers = cfg.MaxEvaluatorWorkers

	strat := strategy.NewGenerator(strategy.DefaultTargetingTokens)
	if !cfg.UseEEGPhase1 {
		strat = strategy.NewFallbackGenerator(strategy.DefaultTargetingTokens)
	}

	orch := orchestrator.New(strat, fan, dual)
	orch.MaxClaimWorkers = cfg.MaxClaimWorkers
	orch.ClaimDeadline = time.Duration(cfg.ClaimDeadlineSeconds) * time.Second
	orch.Sequential = !cfg.UseParallelEvidence
	return orch, nil
}
