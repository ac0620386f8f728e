package main

import (
	"fmt"
	"os"

	"github.com/funfan0517/MediaPublishPlatform/cmd"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitcode.ExitCode(err))
	}
}
