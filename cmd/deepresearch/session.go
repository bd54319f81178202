// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deepresearch/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved research sessions",
	Long: `Session manages the local transcript store. Runs recorded with
'research --session NAME' accumulate here and can be listed, shown,
or exported as plain text.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, newest first",
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a session transcript to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionExport,
}

func init() {
	sessionExportCmd.Flags().String("out", "", "output path (default: session-[id].txt)")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionExportCmd)

	rootCmd.AddCommand(sessionCmd)
}

func openSessionStore() (*session.Store, error) {
	cfg := loadPipelineConfig()
	return session.NewStore(cfg.Session)
}

func runSessionList(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions saved.")
		return nil
	}

	fmt.Printf("%-6s  %-25s  %-15s  %s\n", "ID", "Name", "Mode", "Created")
	for _, s := range sessions {
		fmt.Printf("%-6d  %-25s  %-15s  %s\n",
			s.ID, s.Name, s.Mode, s.CreatedAt.Local().Format(time.RFC3339))
	}
	return nil
}

func sessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	id, err := sessionID(args[0])
	if err != nil {
		return err
	}

	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	text, err := store.ExportText(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runSessionExport(cmd *cobra.Command, args []string) error {
	id, err := sessionID(args[0])
	if err != nil {
		return err
	}

	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	text, err := store.ExportText(context.Background(), id)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("session-%d.txt", id)
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Transcript written to %s\n", out)
	return nil
}
