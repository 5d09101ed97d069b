// ABOUTME: Status command for the bohe-sign CLI
// ABOUTME: Fetches token, sign and schedule status concurrently and prints a summary

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
	"golang.org/x/sync/errgroup"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show token, check-in and schedule status",
	Long:  `Display the service token state, NewAPI configuration, today's check-in and the daily schedule.`,
	Args:  cobra.NoArgs,
	Run:   runWithExit(runStatus),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusReport is the combined status of the three views
type statusReport struct {
	Token    *client.TokenStatus    `json:"token"`
	Sign     *client.SignStatus     `json:"sign"`
	Schedule *client.ScheduleConfig `json:"schedule"`
}

// fetchStatus loads the three status views in parallel
func fetchStatus(ctx context.Context, c *client.Client) (*statusReport, error) {
	var report statusReport
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ts, r := c.TokenStatus(ctx)
		if !r.Success {
			return fmt.Errorf("token status: %s", r.MessageOr("request failed"))
		}
		report.Token = ts
		return nil
	})
	g.Go(func() error {
		ss, r := c.SignStatus(ctx)
		if !r.Success {
			return fmt.Errorf("sign status: %s", r.MessageOr("request failed"))
		}
		report.Sign = ss
		return nil
	})
	g.Go(func() error {
		sc, r := c.Schedule(ctx)
		if !r.Success {
			return fmt.Errorf("schedule: %s", r.MessageOr("request failed"))
		}
		report.Schedule = sc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if report.Token == nil || report.Sign == nil || report.Schedule == nil {
		return nil, errors.New("incomplete status response")
	}
	return &report, nil
}

// runStatus executes the status query and returns exit code
func runStatus(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	report, err := fetchStatus(ctx, c)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}

	if IsJSONOutput() {
		return emitJSON(w, report, exitOK)
	}
	fmt.Fprintln(w, formatStatusHuman(c.BaseURL(), report))
	return exitOK
}

// formatStatusHuman formats the status report for human readability
func formatStatusHuman(url string, r *statusReport) string {
	var sb strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&sb, "%-16s%s\n", label+":", value)
	}

	line("Backend", url)

	tokenLine := badgeText(state.TokenBadge(r.Token))
	if m := r.Token.BoheSignToken.Masked; m != "" {
		tokenLine += " (" + m + ")"
	}
	line("Service token", tokenLine)
	line("Login token", state.Masked(r.Token.LinuxDoToken.Masked))

	newapiLine := badgeText(state.NewAPIBadge(r.Token))
	if uid := r.Token.NewAPI.UserID; uid != "" {
		newapiLine += " (user " + uid + ")"
	}
	line("NewAPI", newapiLine)

	sb.WriteString("\n")
	line("Today", badgeText(state.SignBadge(r.Sign)))
	line("Last sign", state.FormatTime(r.Sign.LastSignTime))
	line("Streak", state.FormatCount(r.Sign.ContinuousDays))
	line("Total signs", state.FormatCount(r.Sign.TotalSigns))

	sb.WriteString("\n")
	line("Schedule", badgeText(state.ScheduleBadge(r.Schedule)))
	if r.Schedule.Enabled {
		line("Next run", state.FormatTime(r.Schedule.NextRun))
		line("Last run", state.FormatTime(r.Schedule.LastRun))
	}

	return strings.TrimRight(sb.String(), "\n")
}
