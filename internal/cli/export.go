package cli

import (
	"errors"

	"github.com/nconklindev/sheetpeek/internal/converter"
	"github.com/nconklindev/sheetpeek/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		sheetName string
		format    string
		toStdout  bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export one sheet as CSV or JSON without opening the viewer",
		Long: `Writes {file}_{sheet}.csv or {file}_{sheet}.json into the output directory.
The first sheet is exported unless --sheet names another one.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			kind, err := converter.ParseExportKind(format)
			if err != nil {
				return err
			}

			s := a.newSession()
			defer s.Reset()

			if err := s.LoadFile(args[0]); err != nil {
				return errors.New(session.Message(err))
			}
			if sheetName != "" && sheetName != s.ActiveSheet() {
				if err := s.SwitchSheet(sheetName); err != nil {
					return errors.New(session.Message(err))
				}
			}

			if toStdout {
				artifact, err := s.Export(kind)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(artifact.Content)
				return err
			}

			result, err := s.ExportTo(kind, a.cfg.Output.Dir)
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d rows from %q)\n", result.OutputFile, result.RowsWritten, result.Sheet)
			return nil
		}),
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Export the named sheet instead of the first one")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv | json")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the export to stdout instead of a file")

	return cmd
}
