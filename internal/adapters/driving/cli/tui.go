package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui"
)

// runProgram runs a bubbletea model to completion. Replaced in tests.
var runProgram = func(model tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [dir]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The picker lists the supported documents of dir (default: the working
directory). Choosing one uploads it and opens the document view, where the
analysis is shown and follow-up questions can be asked. Paths can also be
typed with / or pasted into the picker.

Controls:
  ↑/k, ↓/j   Navigate documents
  Enter      Analyse / Ask
  ←/→, Tab   Browse and use example questions
  Ctrl+R     Resubmit
  Ctrl+X     Remove the document
  Esc        Back
  ?          Toggle help
  q, Ctrl+C  Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("tui crashed")
		}
	}()

	ports := tui.NewPorts(workflowService, fileService, healthService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	app.WithContext(cmd.Context())
	if len(args) > 0 {
		app.WithStartDir(args[0])
	}

	if err := runProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
