// ABOUTME: Dashboard command for the bohe-sign CLI
// ABOUTME: Launches the interactive terminal dashboard

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/debuglog"
)

var (
	refreshInterval time.Duration
	debugDir        string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	Long: `Open the terminal dashboard: status cards, token and schedule forms,
manual check-in and paginated sign history. Status refreshes in the background.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := debuglog.Init(debugDir); err != nil {
			return err
		}
		defer debuglog.Close()

		debuglog.Log("dashboard starting against %s", GetAPIURL())
		return tui.Run(client.New(GetAPIURL()), tui.Options{RefreshInterval: refreshInterval})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().DurationVar(&refreshInterval, "refresh-interval", tui.DefaultRefreshInterval, "Background status refresh interval")
	dashboardCmd.Flags().StringVar(&debugDir, "debug-dir", "", "Directory for the debug log (disabled when empty)")
}
