package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"takeplan/internal/planner"
	"takeplan/internal/render"
)

var errProblemsFound = errors.New("script has problems")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var column string
	var jsonOutput bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <script>",
		Short: "Validate a script without planning takes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			result, err := planner.New(cfg, logger, nil).Check(cmd.Context(), planner.Request{
				ScriptPath: args[0],
				Column:     column,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				for _, line := range checkStatusLines(result, shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
				if len(result.Problems) > 0 {
					fmt.Fprintln(out)
					if err := render.Write(out, render.FormatTable, render.ProblemTable(result.Problems)); err != nil {
						return err
					}
				}
			}
			if strict && len(result.Problems) > 0 {
				return fmt.Errorf("%w: %d problem(s)", errProblemsFound, len(result.Problems))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Dialogue column to check (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when problems are found")
	return cmd
}
