package main

import (
	"os"

	cmd "github.com/mosaicnetworks/gossamer/cmd/gossamer/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(cmd.VersionCmd)
	rootCmd.AddCommand(cmd.NewKindCmds()...)

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
