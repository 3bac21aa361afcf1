package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/flowdeck/internal/domain"
)

func exportCmd(a *App) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every workflow and assistant as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("%w: --format must be json or csv", domain.ErrValidation)
			}
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			toFile := output != "" && output != "-"
			var w io.Writer = cmd.OutOrStdout()
			if toFile {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := sess.Export(cmd.Context(), format, w); err != nil {
				return err
			}
			if toFile {
				ok(cmd, "Exported to %s", highlight.Sprint(output))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
