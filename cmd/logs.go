// ABOUTME: Logs command for the bohe-sign CLI
// ABOUTME: Prints one page of sign history as a table

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
	logsPage  int
	logsLimit int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show sign history",
	Long:  `Show one page of check-in history, newest first.`,
	Args:  cobra.NoArgs,
	Run:   runWithExit(runLogs),
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVar(&logsPage, "page", 1, "Page number (1-based)")
	logsCmd.Flags().IntVar(&logsLimit, "limit", state.DefaultPageLimit, "Rows per page (1-50)")
}

// validatePaging ensures page and limit are within the server's bounds
func validatePaging(page, limit int) error {
	if page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	if limit < 1 || limit > 50 {
		return fmt.Errorf("--limit must be between 1 and 50")
	}
	return nil
}

func runLogs(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	if err := validatePaging(logsPage, logsLimit); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}

	page, r := c.SignLogs(ctx, logsPage, logsLimit)
	if !r.Success {
		fmt.Fprintf(w, "Error: %s\n", r.MessageOr(state.LoadFailed))
		return exitErrored
	}

	if IsJSONOutput() {
		return emitJSON(w, page, exitOK)
	}

	writeLogTable(w, page)
	return exitOK
}

// writeLogTable renders a log page followed by its page indicator
func writeLogTable(w io.Writer, page *client.LogPage) {
	p := state.NewPagination(page.Limit).Apply(page)

	if len(page.Logs) == 0 {
		fmt.Fprintln(w, state.NoRecords)
	} else {
		rows := make([][]string, 0, len(page.Logs))
		for _, e := range page.Logs {
			at := e.Time
			status := badgeText(statusBadge(e.Status))
			message := e.Message
			if message == "" {
				message = state.EmptyMarker
			}
			rows = append(rows, []string{state.FormatTime(&at), status, e.Trigger, message})
		}

		table := newTable(w)
		table.Header([]string{"Time", "Status", "Trigger", "Message"})
		table.Bulk(rows)
		table.Render()
	}

	fmt.Fprintf(w, "\n%s (%d total)\n", p.Label(), p.Total)
}

func statusBadge(status string) state.Badge {
	if status == client.LogStatusSuccess {
		return state.Classify(state.LevelOK, status)
	}
	return state.Classify(state.LevelAbsent, status)
}
