// Command tower is the CLI for the exact-arithmetic numeric tower.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/numtower/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
