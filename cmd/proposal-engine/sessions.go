// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage archived proposal sessions (list, show, export, delete)",
	Long: `Sessions manages the local session archive. Every stage command saves
its session there, so a proposal can be developed across invocations and
inspected or exported at any point.`,
}

// --- list subcommand ---

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions, most recently updated first",
	RunE:  runSessionsList,
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No archived sessions.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-22s  %-18s  %-50s  %-7s  %s\n",
		"ID", "State", "Title", "Version", "Updated")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, sum := range summaries {
		title := sum.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-22s  %-18s  %-50s  %-7d  %s\n",
			sum.ID, sum.State, title, sum.Version,
			sum.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(os.Stdout, "\n%d sessions\n", len(summaries))
	return nil
}

// --- show subcommand ---

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print a session's current proposal and feedback",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s  (state: %s)\n\n", s.ID, s.State)
	if s.Current != nil {
		renderProposal(out, *s.Current)
	} else {
		fmt.Fprintln(out, "No proposal yet.")
	}
	if s.Literature != nil {
		fmt.Fprintln(out, "--- Literature review ---")
		renderLiterature(out, *s.Literature)
		fmt.Fprintln(out)
	}
	if s.Expert != nil {
		fmt.Fprintln(out, "--- Expert review ---")
		renderExpert(out, *s.Expert)
	}
	return nil
}

// --- export subcommand ---

var sessionsExportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a session's full artifact bundle as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := writeSessionFile(outPath, s, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote session to %s\n", outPath)
		return nil
	}
	return pipeline.Export(cmd.OutOrStdout(), s, format)
}

// --- delete subcommand ---

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Remove a session from the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

// --- reset subcommand ---

var sessionsResetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Return a session to its starting state, discarding its proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsReset,
}

func runSessionsReset(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s.Reset()
	if err := store.Save(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Printf("Reset session %s\n", s.ID)
	return nil
}

func init() {
	sessionsExportCmd.Flags().String("format", "", "export format: json or yaml")
	sessionsExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsResetCmd)

	rootCmd.AddCommand(sessionsCmd)
}
