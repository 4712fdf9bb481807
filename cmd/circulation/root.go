package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cfg := &Config{}

	root := &cobra.Command{
		Use:           "circulation",
		Short:         "Library circulation catalog",
		Long:          "Keeps a catalog of library records, lends them to patrons, and queues prioritized claims.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return cfg.Validate()
		},
	}

	cfg.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(cfg),
		newServeCommand(cfg),
		newHistoryCommand(cfg),
	)

	return root
}
