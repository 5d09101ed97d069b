// ABOUTME: Token commands for the bohe-sign CLI
// ABOUTME: Stores the login token, refreshes the service token and sets NewAPI credentials

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
)

var (
	newapiAuthorization string
	newapiUserID        string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage login and service tokens",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the linux.do login token",
	Args:  cobra.ExactArgs(1),
	Run:   runWithExit(runTokenSet),
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the login token for a new service token",
	Args:  cobra.NoArgs,
	Run:   runWithExit(runTokenRefresh),
}

var tokenNewAPICmd = &cobra.Command{
	Use:   "newapi",
	Short: "Store the NewAPI credentials used to redeem codes",
	Args:  cobra.NoArgs,
	Run:   runWithExit(runTokenNewAPI),
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd, tokenRefreshCmd, tokenNewAPICmd)

	tokenNewAPICmd.Flags().StringVar(&newapiAuthorization, "authorization", "", "NewAPI authorization value")
	tokenNewAPICmd.Flags().StringVar(&newapiUserID, "user-id", "", "NewAPI user ID")
}

func runTokenSet(ctx context.Context, w io.Writer, c *client.Client, args []string) int {
	token, err := state.ValidateToken(args[0])
	if err != nil {
		printWarning(w, "%v", err)
		return exitErrored
	}
	return reportWrite(w, c.SetToken(ctx, token), "token saved", "failed to save token")
}

func runTokenRefresh(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	return reportWrite(w, c.RefreshToken(ctx), "token refreshed", "failed to refresh token")
}

func runTokenNewAPI(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	auth, userID, err := state.ValidateNewAPI(newapiAuthorization, newapiUserID)
	if err != nil {
		printWarning(w, "%v", err)
		return exitErrored
	}
	code := reportWrite(w, c.SetNewAPI(ctx, auth, userID), "NewAPI settings saved", "failed to save NewAPI settings")
	if code == exitOK && !IsJSONOutput() {
		fmt.Fprintf(w, "User ID: %s\n", userID)
	}
	return code
}
