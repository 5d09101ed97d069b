// ABOUTME: Root command for the bohe-sign CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

var (
	apiURL     string
	jsonOutput bool
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "BOHE_SIGN_API_URL"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "bohe-sign",
	Short: "Console for the bohe daily check-in agent",
	Long: `bohe-sign manages an automated daily check-in agent.

It stores and rotates login tokens, triggers check-ins, shows sign history,
configures the daily schedule, and can run the API server itself.

Environment Variables:
  BOHE_SIGN_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides "+apiURLEnv+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv(apiURLEnv); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// runWithExit wires a runX function into a cobra Run with signal handling
func runWithExit(run func(ctx context.Context, w io.Writer, c *client.Client, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := run(ctx, os.Stdout, client.New(GetAPIURL()), args); code != 0 {
			os.Exit(code)
		}
	}
}
