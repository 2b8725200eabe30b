package main

import (
	"os"

	"github.com/ideutil/jbsync/cmd/jbsync/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
