// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deepresearch/internal/pipeline"
	"github.com/pdiddy/deepresearch/internal/session"
	"github.com/pdiddy/deepresearch/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic...]",
	Short: "Run the full research pipeline on a topic",
	Long: `Research expands the topic into sub-questions, answers each one with
the mode's retrieval strategy, and synthesizes the answers into a final
document. Short factual questions get a direct answer instead of the full
document unless the mode forces one.

Available modes: ` + modeList() + `.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("mode", string(pipeline.ModeNormal), "pipeline mode")
	researchCmd.Flags().Bool("polish", false, "polish the document with the hosted backend")
	researchCmd.Flags().Bool("factual", false, "force the short factual-answer path")
	researchCmd.Flags().String("out", "", "write a YAML report to this path")
	researchCmd.Flags().String("session", "", "record the run in a named session")
	researchCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(researchCmd)
}

func modeList() string {
	modes := pipeline.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func runResearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research topic")
	}
	topic := strings.Join(args, " ")

	modeName, _ := cmd.Flags().GetString("mode")
	mode, _, ok := pipeline.ParseMode(modeName)
	if !ok {
		return fmt.Errorf("unknown mode %q: use one of %s", modeName, modeList())
	}

	polish, _ := cmd.Flags().GetBool("polish")
	factual, _ := cmd.Flags().GetBool("factual")

	cfg := loadPipelineConfig()
	p := buildPipeline(cfg)

	res := p.Run(context.Background(), topic, mode, pipeline.Options{
		Polish:       polish || cfg.Writer.Polish,
		ForceFactual: factual,
	})

	if name, _ := cmd.Flags().GetString("session"); name != "" {
		if err := recordRun(cfg, name, string(mode), topic, res.FinalText); err != nil {
			fmt.Fprintf(os.Stderr, "warning: session not recorded: %v\n", err)
		}
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := pipeline.WriteReport(out, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", out)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(res.FinalText)
	return nil
}

// recordRun appends the query and result to a session, creating it when
// no session with that name exists yet.
func recordRun(cfg types.PipelineConfig, name, mode, topic, finalText string) error {
	store, err := session.NewStore(cfg.Session)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	sessions, err := store.List(ctx)
	if err != nil {
		return err
	}
	var target *session.Session
	for i := range sessions {
		if sessions[i].Name == name {
			target = &sessions[i]
			break
		}
	}
	if target == nil {
		created, err := store.Create(ctx, name, mode)
		if err != nil {
			return err
		}
		target = &created
	}

	if err := store.Append(ctx, target.ID, "user", topic); err != nil {
		return err
	}
	return store.Append(ctx, target.ID, "assistant", finalText)
}
