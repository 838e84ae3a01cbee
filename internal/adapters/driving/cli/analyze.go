package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file> [file...]",
	Short: "Analyse a document",
	Long: `Upload a document to the analysis service and print the analysis.

Only the first file is analysed; any further files are ignored.

Once the service reports the document as processed, follow-up questions can
be asked with --ask (repeatable) or interactively with --interactive.

Examples:
  docaudit analyze report.pdf
  docaudit analyze report.pdf -a "Summarize the audit findings"
  docaudit analyze report.pdf --interactive
  docaudit analyze report.pdf --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayP("ask", "a", nil, "follow-up question (repeatable)")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "read follow-up questions from stdin")
	analyzeCmd.Flags().Bool("json", false, "print the final state as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}
	if fileService == nil {
		return errors.New("file service not configured")
	}

	questions, _ := cmd.Flags().GetStringArray("ask")
	interactive, _ := cmd.Flags().GetBool("interactive")
	asJSON, _ := cmd.Flags().GetBool("json")

	candidate, err := fileService.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	if len(args) > 1 {
		logger.Warn("only %s is analysed, %d other file(s) ignored", candidate.Name, len(args)-1)
	}

	unsubscribe := workflowService.Subscribe(progressPrinter(cmd.ErrOrStderr()))
	state, err := workflowService.SelectAndSubmit(cmd.Context(), []domain.CandidateFile{*candidate})
	unsubscribe()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if !asJSON {
		printState(cmd, state)
	}

	for _, q := range questions {
		state, err = askAndPrint(cmd, q, asJSON)
		if err != nil {
			return err
		}
	}

	if interactive {
		state, err = askInteractive(cmd, asJSON)
		if err != nil {
			return err
		}
	}

	if asJSON {
		if err := printJSON(cmd, state); err != nil {
			return err
		}
	}

	if state.File != nil && state.File.Status == domain.FileError {
		return fmt.Errorf("analysis of %s failed", state.File.Name)
	}
	return nil
}

// askAndPrint sends one question. A query that cannot be sent is reported
// as an error; a failed answer is printed like any other.
func askAndPrint(cmd *cobra.Command, question string, quiet bool) (domain.WorkflowState, error) {
	state, err := workflowService.AskQuery(cmd.Context(), question)
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return state, nil
	case errors.Is(err, domain.ErrDocumentNotProcessed):
		return state, errors.New("document was not processed, follow-up questions are unavailable")
	case err != nil:
		return state, fmt.Errorf("query failed: %w", err)
	}
	if !quiet {
		printQuery(cmd, state.Query)
	}
	return state, nil
}

func askInteractive(cmd *cobra.Command, quiet bool) (domain.WorkflowState, error) {
	state := workflowService.State()
	if !state.QueryEnabled() {
		return state, errors.New("document was not processed, follow-up questions are unavailable")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	prompt := func() {
		if !quiet {
			cmd.Print("\nQuestion (exit to finish): ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			var err error
			state, err = askAndPrint(cmd, line, quiet)
			if err != nil {
				return state, err
			}
		}
		prompt()
	}
	if err := scanner.Err(); err != nil {
		return state, fmt.Errorf("failed to read question: %w", err)
	}
	return workflowService.State(), nil
}
