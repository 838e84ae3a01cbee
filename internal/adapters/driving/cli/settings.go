package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the analysis service connection, circuit breaker,
workflow and history options.

Settings are stored in ~/.docaudit/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its key.

Examples:
  docaudit settings set service.base_url http://10.0.0.5:5000
  docaudit settings set service.timeout_seconds 300
  docaudit settings set workflow.discard_stale false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Service]")
	cmd.Printf("  Base URL: %s\n", settings.Service.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.Service.Timeout())
	cmd.Printf("  Query rate: %g/s\n", settings.Service.QueryRate)
	cmd.Println()

	cmd.Println("[Circuit breaker]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Breaker.Enabled))
	if settings.Breaker.Enabled {
		cmd.Printf("  Minimum requests: %d\n", settings.Breaker.MinRequests)
		cmd.Printf("  Failure ratio: %g\n", settings.Breaker.FailureRatio)
		cmd.Printf("  Open for: %ds\n", settings.Breaker.OpenSeconds)
	}
	cmd.Println()

	cmd.Println("[Workflow]")
	cmd.Printf("  Discard stale responses: %s\n", yesNo(settings.Workflow.DiscardStale))
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.History.Enabled))
	cmd.Println()

	cmd.Println("Keys for 'docaudit settings set':")
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %s\n", key)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("invalid setting: %w", err)
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
