package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"takeplan/internal/history"
	"takeplan/internal/planner"
	"takeplan/internal/render"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var column string
	var format string
	var outDir string
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "plan <script>",
		Short: "Split a script into takes and print the take sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(format) == "" {
				format = cfg.Output.Format
			}
			format, err = normalizeFormat(format)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			var store *history.Store
			if cfg.History.Enabled && !noHistory {
				if err := cfg.EnsureDirectories(); err != nil {
					return fmt.Errorf("ensure directories: %w", err)
				}
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
			}

			result, err := planner.New(cfg, logger, store).Plan(cmd.Context(), planner.Request{
				ScriptPath: args[0],
				Column:     column,
				Format:     format,
				OutputDir:  outDir,
			})
			if err != nil {
				return err
			}

			if format == render.FormatJSON {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				if err := render.Write(cmd.OutOrStdout(), format,
					render.DetailTable(result.Report.Detail, result.Column),
					render.SummaryTable(result.Report.Summary),
					render.ProblemTable(result.Problems),
					render.FailureTable(result.Failures),
				); err != nil {
					return err
				}
			}

			errOut := cmd.ErrOrStderr()
			for _, line := range planStatusLines(result, shouldColorize(errOut)) {
				fmt.Fprintln(errOut, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Dialogue column to plan from (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, csv, markdown, html or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Also write each report as a file in this directory")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in history")
	return cmd
}
