// Package cli implements the docaudit command line on top of cobra.
//
// Commands read their services from package variables. The composition root
// injects them through the Set* functions, usually from the bootstrap hook
// that runs once the root flags are parsed.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the root flags to the bootstrap hook.
type Options struct {
	// Verbose enables debug logging.
	Verbose bool

	// ServerURL overrides service.base_url for this invocation.
	ServerURL string

	// ConfigDir overrides the ~/.docaudit directory.
	ConfigDir string

	// NoHistory keeps history in memory only.
	NoHistory bool
}

// Bootstrap builds and injects services once flags are known. The returned
// cleanup runs after the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (cleanup func(), err error)

var (
	workflowService driving.WorkflowService
	fileService     driving.FileService
	healthService   driving.HealthService
	historyService  driving.HistoryService
	settingsService driving.SettingsService

	bootstrap Bootstrap
	cleanup   func()
	rootOpts  Options
)

var rootCmd = &cobra.Command{
	Use:   "docaudit",
	Short: "Audit documents with a remote analysis service",
	Long: `docaudit uploads a document to the analysis service, shows the
question and answer analysis it returns, and lets you ask follow-up
questions about the document.

Supported documents: .pdf, .docx, .txt`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		runCleanup()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rootOpts.ServerURL, "server", "", "analysis service URL (overrides service.base_url)")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.docaudit)")
	flags.BoolVar(&rootOpts.NoHistory, "no-history", false, "do not persist history")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Command output goes to
// stdout, logs and progress to stderr.
func ExecuteContext(ctx context.Context) error {
	defer runCleanup()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the hook that wires services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetWorkflowService sets the workflow service.
func SetWorkflowService(s driving.WorkflowService) {
	workflowService = s
}

// SetFileService sets the file service.
func SetFileService(s driving.FileService) {
	fileService = s
}

// SetHealthService sets the health service.
func SetHealthService(s driving.HealthService) {
	healthService = s
}

// SetHistoryService sets the history service.
func SetHistoryService(s driving.HistoryService) {
	historyService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)
	if bootstrap == nil {
		return nil
	}
	fn, err := bootstrap(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	cleanup = fn
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}
