package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/batch"
)

func newRunCommand(cfg *Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run <input-file>",
		Short: "Apply a command file and write the report next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger(cfg, cmd.ErrOrStderr())

			input := args[0]
			if output == "" {
				output = batch.OutputFilename(input)
			}

			env, err := newEnvironment(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer env.close()

			lib, err := env.newLibrary()
			if err != nil {
				return err
			}

			in, err := os.Open(input)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(output)
			if err != nil {
				return err
			}

			summary, err := batch.Run(ctx, lib, in, out)
			if closeErr := out.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}

			logger.Info("run finished",
				"input", input,
				"output", output,
				"lines", summary.Lines,
				"applied", summary.Applied,
				"rejected", summary.Rejected,
				"malformed", summary.Malformed,
				"terminated", summary.Terminated,
			)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report file (default: <input>_output_file.txt)")

	return cmd
}
