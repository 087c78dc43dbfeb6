package main

import (
	"github.com/spf13/cobra"

	"takeplan/internal/render"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return render.WriteJSON(cmd.OutOrStdout(), v)
}
