// ABOUTME: Health command for the bohe-sign CLI
// ABOUTME: Checks backend connectivity and database status

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the check-in API server and verify its database.`,
	Args:  cobra.NoArgs,
	Run:   runWithExit(runHealth),
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	resp, r := c.Health(ctx)
	if !r.Success {
		fmt.Fprintf(w, "Error: %s\n", r.MessageOr("health check failed"))
		return exitErrored
	}

	if IsJSONOutput() {
		return emitJSON(w, map[string]string{
			"backend":  c.BaseURL(),
			"status":   resp.Status,
			"database": resp.Database,
		}, exitOK)
	}
	fmt.Fprintln(w, formatHealthHuman(c.BaseURL(), resp))
	return exitOK
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Backend:   %s
Status:    %s
Database:  %s`, url, resp.Status, resp.Database)
}
