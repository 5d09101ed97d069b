// ABOUTME: Entry point for the bohe-sign binary
// ABOUTME: Runs the CLI, the dashboard or the API server depending on the subcommand

package main

import (
	"fmt"
	"os"

	"github.com/wobuhui666/bohe-api-auto-sign/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
