package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nconklindev/sheetpeek/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type sheetInfo struct {
	Sheet        string `json:"sheet"`
	TotalRows    int    `json:"totalRows"`
	TotalColumns int    `json:"totalColumns"`
	TotalSheets  int    `json:"totalSheets"`
	Empty        bool   `json:"empty,omitempty"`
}

func newInfoCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "List the sheets of a file with row and column counts",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			s := a.newSession()
			defer s.Reset()

			if err := s.LoadFile(args[0]); err != nil {
				return errors.New(session.Message(err))
			}

			infos, err := collectSheetInfo(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			headerStyle := color.New(color.Bold, color.FgCyan)
			dim := color.New(color.FgHiBlack)

			headerStyle.Fprintf(out, "File: %s (%s, %d sheets)\n", args[0], s.Format(), len(infos))
			for _, info := range infos {
				if info.Empty {
					fmt.Fprintf(out, "  %s ", info.Sheet)
					dim.Fprintln(out, "(empty)")
					continue
				}
				fmt.Fprintf(out, "  %s ", info.Sheet)
				dim.Fprintf(out, "(%d rows, %d columns)\n", info.TotalRows, info.TotalColumns)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// collectSheetInfo visits every sheet. The last non-empty sheet visited is
// left active.
func collectSheetInfo(s *session.Session) ([]sheetInfo, error) {
	names := s.SheetNames()
	infos := make([]sheetInfo, 0, len(names))

	for _, name := range names {
		err := s.SwitchSheet(name)
		if errors.Is(err, session.ErrEmptySheet) {
			infos = append(infos, sheetInfo{Sheet: name, TotalSheets: len(names), Empty: true})
			continue
		}
		if err != nil {
			return nil, errors.New(session.Message(err))
		}

		stats := s.Stats()
		infos = append(infos, sheetInfo{
			Sheet:        name,
			TotalRows:    stats.TotalRows,
			TotalColumns: stats.TotalColumns,
			TotalSheets:  stats.TotalSheets,
		})
	}

	return infos, nil
}
