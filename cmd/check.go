// ABOUTME: Check command for the bohe-sign CLI
// ABOUTME: Verifies the token is valid and today is signed, for cron and CI use

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the agent is healthy",
	Long: `Check that the service token is valid and today's check-in has happened.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (connectivity, invalid response)`,
	Args: cobra.NoArgs,
	Run:  runWithExit(runCheck),
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult represents the result of a single check
type checkResult struct {
	name   string
	detail string
	passed bool
}

// runCheck executes the checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, c *client.Client, _ []string) int {
	report, err := fetchStatus(ctx, c)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}

	results := performChecks(report)
	code := exitOK
	if _, failed := countResults(results); failed > 0 {
		code = exitFailed
	}

	if IsJSONOutput() {
		return emitJSON(w, checkJSON(results), code)
	}
	fmt.Fprintln(w, formatCheckHuman(results))
	return code
}

// performChecks runs all checks against the status report
func performChecks(r *statusReport) []checkResult {
	token := r.Token.BoheSignToken
	tokenDetail := "valid"
	switch {
	case !token.Exists:
		tokenDetail = "not configured"
	case !token.Valid:
		tokenDetail = "invalid, run 'bohe-sign token refresh'"
	}

	signDetail := "signed"
	if !r.Sign.SignedToday {
		signDetail = "not signed yet"
	}

	return []checkResult{
		{name: "Service token", detail: tokenDetail, passed: token.Exists && token.Valid},
		{name: "Today's check-in", detail: signDetail, passed: r.Sign.SignedToday},
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var sb strings.Builder

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", symbol, r.name, r.detail)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		fmt.Fprintf(&sb, "\nFAILED: %d check(s) failed", failed)
	} else {
		fmt.Fprintf(&sb, "\nPASSED: All %d check(s) passed", passed)
	}

	return sb.String()
}

// checkJSON shapes check results for JSON output
func checkJSON(results []checkResult) map[string]any {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}
	return map[string]any{"status": status, "checks": checks}
}
