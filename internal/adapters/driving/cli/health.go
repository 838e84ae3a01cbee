package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the analysis service",
	Long:  `Query the analysis service health endpoint and report whether it is ready.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	status, err := healthService.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, status)
	}

	cmd.Printf("Status: %s\n", status.Status)
	if status.Message != "" {
		cmd.Printf("Message: %s\n", status.Message)
	}
	rag := "not initialised"
	if status.RAGInitialized {
		rag = "initialised"
	}
	cmd.Printf("Query engine: %s\n", rag)

	if !status.Healthy() {
		return errors.New("analysis service is not healthy")
	}
	return nil
}
