// ABOUTME: Sign command for the bohe-sign CLI
// ABOUTME: Triggers an immediate manual check-in

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Run a check-in now",
	Long: `Run the lottery and redeem the code to NewAPI right now.

Exit codes:
  0 - Check-in succeeded
  1 - Server reported a failure
  2 - Error (connectivity)`,
	Args: cobra.NoArgs,
	Run:  runWithExit(runSign),
}

func init() {
	rootCmd.AddCommand(signCmd)
}

func runSign(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	return reportWrite(w, c.SignNow(ctx), "sign succeeded", "sign failed")
}
