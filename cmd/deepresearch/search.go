// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deepresearch/internal/research"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run a single retrieval strategy without the planner",
	Long: `Search answers one query with one retrieval strategy and prints the
result. Strategies: web (plain web search), model (backend knowledge),
academic (academic sources only), papers (top papers with summaries),
hybrid (merged web and academic).`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("strategy", string(research.StrategyWeb), "retrieval strategy: web, model, academic, papers, hybrid")
	searchCmd.Flags().Int("max-results", 0, "maximum search items per query (0 = default)")
	searchCmd.Flags().Bool("json", false, "output the answer as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	strategyName, _ := cmd.Flags().GetString("strategy")
	strategy, ok := research.ParseStrategy(strategyName)
	if !ok {
		return fmt.Errorf("unknown strategy %q: use web, model, academic, papers, or hybrid", strategyName)
	}

	cfg := loadPipelineConfig()
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		cfg.Search.MaxResults = n
	}
	p := buildPipeline(cfg)

	answer := p.RunStrategy(context.Background(), query, strategy)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Println(answer.Content)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range answer.Sources {
			fmt.Printf("- %s\n", s)
		}
	}
	return nil
}
