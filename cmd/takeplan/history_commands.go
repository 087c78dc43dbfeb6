package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"takeplan/internal/config"
	"takeplan/internal/history"
	"takeplan/internal/language"
	"takeplan/internal/render"
	"takeplan/internal/takes"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded plan runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPurgeCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				return render.Write(out, render.FormatTable, runsTable(runs))
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its takes (id prefixes are accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				run, runTakes, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					if runTakes == nil {
						runTakes = []history.RunTake{}
					}
					return writeJSON(cmd, struct {
						history.Run
						Takes []history.RunTake `json:"takes"`
					}{run, runTakes})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := renderSectionHeader("Run "+run.ID, colorize)
				lines = append(lines,
					renderStatusLine("Created", statusInfo, run.CreatedAt.Local().Format(time.DateTime), colorize),
					renderStatusLine("Script", statusInfo, fmt.Sprintf("%s [%s]", run.InputPath, run.DialogueColumn), colorize),
					renderStatusLine("Language", statusInfo, language.DisplayName(run.Language), colorize),
					renderStatusLine("Takes", statusOK, fmt.Sprintf("%d across %d scene(s)", run.Stats.Takes, run.Stats.Scenes-run.Stats.FailedScenes), colorize),
					problemLine(run.Problems, colorize),
					renderStatusLine("Constraints", statusInfo, fmt.Sprintf("%.0fs, %d lines, %d per character, %d chars, %.0fs silence, %d fps",
						run.Constraints.MaxDuration, run.Constraints.MaxLinesPerTake, run.Constraints.MaxConsecutiveLinesPerCharacter,
						run.Constraints.MaxCharsPerLine, run.Constraints.MaxSilenceBetweenInterventions, run.Constraints.FrameRate), colorize),
				)
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				if len(runTakes) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				return render.Write(out, render.FormatTable, runTakesTable(runTakes))
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryPurgeCommand(ctx *commandContext) *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete runs older than a given age",
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := parseAge(olderThan)
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				removed, err := store.Purge(cmd.Context(), time.Now().Add(-age))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "30d", "Age threshold, e.g. 12h or 30d (0 removes everything)")
	return cmd
}

// parseAge accepts time.ParseDuration syntax plus a whole-day "d" suffix.
func parseAge(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "0" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid age %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid age %q", value)
	}
	return d, nil
}

func runsTable(runs []history.Run) render.Table {
	t := render.Table{
		Headers: []string{"ID", "CREATED", "SCRIPT", "COLUMN", "LANG", "TAKES", "PROBLEMS", "FAILED"},
		Aligns: []render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignLeft,
			render.AlignRight, render.AlignRight, render.AlignRight},
	}
	for _, run := range runs {
		t.Rows = append(t.Rows, []string{
			shortID(run.ID),
			run.CreatedAt.Local().Format(time.DateTime),
			run.InputPath,
			run.DialogueColumn,
			run.Language,
			strconv.Itoa(run.Stats.Takes),
			strconv.Itoa(run.Problems),
			strconv.Itoa(run.Stats.FailedScenes),
		})
	}
	return t
}

func runTakesTable(runTakes []history.RunTake) render.Table {
	summaries := make([]takes.TakeSummary, 0, len(runTakes))
	for _, take := range runTakes {
		summaries = append(summaries, takes.TakeSummary{
			Take:       take.Take,
			Scene:      take.Scene,
			In:         take.In,
			Out:        take.Out,
			Duration:   take.Duration,
			Lines:      take.Lines,
			Characters: take.Characters,
		})
	}
	return render.TakesTable(summaries)
}
