// ABOUTME: Schedule commands for the bohe-sign CLI
// ABOUTME: Shows, sets and deletes the daily check-in time

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
	scheduleTime    string
	scheduleDisable bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the daily check-in schedule",
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily schedule",
	Args:  cobra.NoArgs,
	Run:   runWithExit(runScheduleShow),
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Enable the daily check-in at a time, or disable it",
	Example: `  bohe-sign schedule set --time 08:30
  bohe-sign schedule set --disable`,
	Args: cobra.NoArgs,
	Run:  runWithExit(runScheduleSet),
}

var scheduleDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the daily schedule",
	Args:  cobra.NoArgs,
	Run:   runWithExit(runScheduleDelete),
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleShowCmd, scheduleSetCmd, scheduleDeleteCmd)

	scheduleSetCmd.Flags().StringVar(&scheduleTime, "time", "", "Daily check-in time, HH:MM in server local time")
	scheduleSetCmd.Flags().BoolVar(&scheduleDisable, "disable", false, "Disable the daily check-in")
}

func runScheduleShow(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	sc, r := c.Schedule(ctx)
	if !r.Success {
		fmt.Fprintf(w, "Error: %s\n", r.MessageOr("failed to load schedule"))
		return exitErrored
	}
	if IsJSONOutput() {
		return emitJSON(w, sc, exitOK)
	}
	fmt.Fprintln(w, formatScheduleHuman(sc))
	return exitOK
}

// formatScheduleHuman formats the schedule for human readability
func formatScheduleHuman(sc *client.ScheduleConfig) string {
	out := fmt.Sprintf("Schedule:  %s", badgeText(state.ScheduleBadge(sc)))
	if sc.Enabled {
		out += fmt.Sprintf("\nNext run:  %s\nLast run:  %s", state.FormatTime(sc.NextRun), state.FormatTime(sc.LastRun))
	}
	return out
}

func runScheduleSet(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	enabled := !scheduleDisable
	at, err := state.ValidateSchedule(enabled, scheduleTime)
	if err != nil {
		printWarning(w, "%v", err)
		return exitErrored
	}
	return reportWrite(w, c.SaveSchedule(ctx, enabled, at), "schedule saved", "failed to save schedule")
}

func runScheduleDelete(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	return reportWrite(w, c.DeleteSchedule(ctx), "schedule deleted", "failed to delete schedule")
}
