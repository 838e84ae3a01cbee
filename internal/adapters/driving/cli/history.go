package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past analyses and questions",
	Long: `Every completed analysis and follow-up question is recorded locally.
Use subcommands to list or clear the records.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded exchanges, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded exchanges",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().IntP("limit", "n", 20, "maximum number of entries (0 = all)")
		c.Flags().Bool("json", false, "output as JSON")
	}
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	entries, err := historyService.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if asJSON {
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No history recorded.")
		return nil
	}
	for i := range entries {
		printHistoryEntry(cmd, &entries[i])
	}
	return nil
}

func printHistoryEntry(cmd *cobra.Command, e *domain.HistoryEntry) {
	mark := "✓"
	if !e.Success || e.Error != "" {
		mark = "✗"
	}
	cmd.Printf("%s %-8s %s  %s\n", mark, e.Kind, e.FileName, humanize.Time(e.CreatedAt))
	switch e.Kind {
	case domain.HistoryQuery:
		cmd.Printf("    Q: %s\n", e.Question)
		if e.Answer != "" {
			cmd.Printf("    A: %s\n", indent(e.Answer, "       "))
		}
	case domain.HistoryAnalysis:
		if e.Answer != "" {
			cmd.Printf("    %s answers\n", e.Answer)
		}
	}
	if e.Error != "" {
		cmd.Printf("    Error: %s\n", e.Error)
	}
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
