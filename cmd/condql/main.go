// Command condql renders YAML query descriptions to dialect specific SQL.
package main

import (
	"fmt"
	"os"

	"github.com/zoobzio/condql/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
