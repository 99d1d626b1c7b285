package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "casedesk",
		Short:         "Disputes and litigation backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, envFiles, "")
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env", "../../.env"}, "dotenv files loaded when present")

	root.AddCommand(serveCmd(&envFiles))
	root.AddCommand(configCmd(&envFiles))
	root.AddCommand(tokenCmd(&envFiles))
	return root
}
