package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"takeplan/internal/dialogue"
)

func newWrapCommand(ctx *commandContext) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "wrap [text...]",
		Short: "Show how a dialogue line wraps (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Constraints.MaxCharsPerLine
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			out := cmd.OutOrStdout()
			lines := dialogue.Lines(text, width)
			for i, line := range lines {
				fmt.Fprintf(out, "%3d  %-*s  (%d)\n", i+1, width, line, dialogue.Width(line))
			}
			fmt.Fprintf(out, "%d line(s) at %d characters\n", len(lines), width)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Characters per line (default from config)")
	return cmd
}
