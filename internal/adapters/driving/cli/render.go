package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// isTerminal reports whether w is an interactive terminal.
// Tests swap it out.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func statusMark(status domain.FileStatus) string {
	switch status {
	case domain.FileCompleted:
		return "✓"
	case domain.FileError:
		return "✗"
	default:
		return "…"
	}
}

func printFileLine(cmd *cobra.Command, f *domain.UploadedFile) {
	if f == nil {
		cmd.Println("No file selected")
		return
	}
	cmd.Printf("%s %s (%s) %s %d%%\n",
		statusMark(f.Status), f.Name, humanize.Bytes(uint64(max(f.Size, 0))), f.Status, f.Progress)
}

func printAnalysis(cmd *cobra.Command, r *domain.AnalysisResult) {
	if r == nil {
		return
	}
	if r.HasError() {
		cmd.Println()
		cmd.Printf("Error: %s\n", r.Message)
		cmd.Printf("  %s\n", r.Error)
		return
	}

	cmd.Println()
	if r.Message != "" {
		cmd.Println(r.Message)
	}
	entries := r.Entries()
	if len(entries) == 0 {
		cmd.Println("No analysis returned.")
		return
	}
	for i, e := range entries {
		cmd.Printf("\n%d. %s\n", i+1, e.Question)
		cmd.Printf("   %s\n", indent(e.Answer, "   "))
	}
	if r.CanQuery() {
		cmd.Println()
		cmd.Println("Document processed. Follow-up questions are available.")
	}
}

func printQuery(cmd *cobra.Command, q *domain.QueryResult) {
	if q == nil {
		return
	}
	cmd.Println()
	cmd.Printf("Q: %s\n", strings.TrimSpace(q.Query))
	if q.HasError() {
		cmd.Printf("Error: %s\n", q.Message)
		cmd.Printf("  %s\n", q.Error)
		return
	}
	cmd.Printf("A: %s\n", indent(q.Response, "   "))
}

func printState(cmd *cobra.Command, state domain.WorkflowState) {
	printFileLine(cmd, state.File)
	printAnalysis(cmd, state.Analysis)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func indent(text, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", "\n"+prefix)
}

// progressPrinter writes upload progress to a terminal as it changes.
// It is a no-op when w is not a terminal.
func progressPrinter(w io.Writer) func(domain.WorkflowState) {
	if !isTerminal(w) {
		return func(domain.WorkflowState) {}
	}
	var mu sync.Mutex
	last := -1
	return func(s domain.WorkflowState) {
		mu.Lock()
		defer mu.Unlock()
		if s.File == nil || s.File.Progress == last {
			return
		}
		last = s.File.Progress
		fmt.Fprintf(w, "\rUploading %s... %3d%%", s.File.Name, s.File.Progress)
		if s.File.Status.IsTerminal() {
			fmt.Fprint(w, "\r\033[K")
		}
	}
}
