package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// DropFolder reports documents placed in a directory.
type DropFolder interface {
	// Dir returns the watched directory.
	Dir() string
	// Watch delivers candidates until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan domain.CandidateFile, error)
}

// DropFolderFactory creates a DropFolder for dir.
type DropFolderFactory func(dir string, debounce time.Duration) DropFolder

var dropFolderFactory DropFolderFactory

// SetDropFolderFactory sets how the watch command observes directories.
func SetDropFolderFactory(fn DropFolderFactory) {
	dropFolderFactory = fn
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Analyse documents dropped into a folder",
	Long: `Watch a directory and analyse every supported document (.pdf, .docx,
.txt) that is created or rewritten in it.

Each new document replaces the previous one. A document that is still being
analysed when a newer one arrives is superseded and its result is not shown.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "quiet period before a changed file is analysed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}
	if dropFolderFactory == nil {
		return errors.New("drop folder not configured")
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	folder := dropFolderFactory(args[0], debounce)
	drops, err := folder.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	cmd.Printf("Watching %s for documents (Ctrl+C to stop)\n", folder.Dir())

	var (
		wg  sync.WaitGroup
		out sync.Mutex
	)
	for candidate := range drops {
		snap, ok := workflowService.Select([]domain.CandidateFile{candidate})
		if !ok {
			continue
		}
		out.Lock()
		cmd.Printf("\nNew document: %s\n", candidate.Name)
		out.Unlock()

		wg.Add(1)
		go func(fileID string) {
			defer wg.Done()
			state, err := workflowService.Submit(ctx, fileID)
			if err != nil {
				logger.Debug("submit %s: %v", fileID, err)
				return
			}
			if state.File == nil || state.File.ID != fileID {
				logger.Debug("result for %s superseded", fileID)
				return
			}
			out.Lock()
			printState(cmd, state)
			out.Unlock()
		}(snap.File.ID)
	}
	wg.Wait()

	cmd.Println("Stopped watching.")
	return nil
}
