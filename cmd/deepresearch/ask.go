// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask the generation backends a single question",
	Long: `Ask sends one question straight to the backend chain (local LM Studio
first, hosted OpenAI as fallback) without any web retrieval or planning.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a question")
	}
	question := strings.Join(args, " ")

	cfg := loadPipelineConfig()
	p := buildPipeline(cfg)

	answer := p.Client.ModelAnswer(context.Background(), question)
	fmt.Println(answer.Content)
	return nil
}
