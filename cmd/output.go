// ABOUTME: Shared output helpers for CLI commands
// ABOUTME: Colored badges, JSON encoding and result-to-exit-code mapping

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
)

// Exit codes shared by all commands
const (
	exitOK      = 0
	exitFailed  = 1
	exitErrored = 2
)

// badgeText renders a classified badge with icon and color
func badgeText(b state.Badge) string {
	text := b.Icon.Fallback + " " + b.Text
	switch b.Style {
	case state.StyleSuccess:
		return color.GreenString(text)
	case state.StyleWarning:
		return color.YellowString(text)
	case state.StyleError:
		return color.RedString(text)
	default:
		return color.CyanString(text)
	}
}

func printSuccess(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}

func printError(w io.Writer, format string, args ...any) {
	color.New(color.FgRed).Fprintf(w, "✗ "+format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "⚠ "+format+"\n", args...)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// emitJSON prints v and returns code, or reports the encoding error
func emitJSON(w io.Writer, v any, code int) int {
	if err := printJSON(w, v); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}
	return code
}

// exitCodeFor maps a write result onto an exit code: network failures are
// errors, server-side refusals are failed checks
func exitCodeFor(r client.Result) int {
	switch {
	case r.Success:
		return exitOK
	case r.Message == client.NetworkErrorMessage:
		return exitErrored
	default:
		return exitFailed
	}
}

// reportWrite prints the outcome of a write request and returns its exit code
func reportWrite(w io.Writer, r client.Result, success, failure string) int {
	if IsJSONOutput() {
		return emitJSON(w, r, exitCodeFor(r))
	}
	if r.Success {
		printSuccess(w, "%s", r.MessageOr(success))
	} else {
		printError(w, "%s", r.MessageOr(failure))
	}
	return exitCodeFor(r)
}

// newTable creates a borderless left-aligned table
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}
