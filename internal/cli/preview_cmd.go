package cli

import (
	"fmt"

	"github.com/nconklindev/tidy/internal/converter"
	"github.com/nconklindev/tidy/internal/types"
	"github.com/nconklindev/tidy/internal/ui"

	"github.com/spf13/cobra"
)

type previewColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type previewOutput struct {
	File    string          `json:"file"`
	Rows    int             `json:"rows"`
	Columns []previewColumn `json:"columns"`
	Head    [][]*string     `json:"head"`
}

func newPreviewCmd(a *app) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Show the inferred column types and first rows of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows <= 0 {
				rows = a.cfg.Files.PreviewRows
			}

			up, err := converter.ReadUpload(args[0], a.cfg.Files.MaxFileSize)
			if err != nil {
				return err
			}
			table, err := converter.LoadUpload(up)
			if err != nil {
				return err
			}
			head := table.Head(rows)

			w := cmd.OutOrStdout()
			if getOutputFormat(cmd) == "json" {
				return printJSON(w, toPreviewOutput(up.Name, table, head))
			}

			_, _ = fmt.Fprintf(w, "%s: %d rows, %d columns\n\n", up.Name, table.NumRows(), len(table.Columns))
			_, _ = fmt.Fprintln(w, ui.RenderPreview(head))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "Number of rows to show (default: TIDY_PREVIEW_ROWS)")

	return cmd
}

// toPreviewOutput encodes missing cells as JSON null.
func toPreviewOutput(name string, full, head *types.Table) previewOutput {
	out := previewOutput{
		File:    name,
		Rows:    full.NumRows(),
		Columns: make([]previewColumn, len(full.Columns)),
		Head:    make([][]*string, len(head.Rows)),
	}
	for i, c := range full.Columns {
		out.Columns[i] = previewColumn{Name: c, Type: full.Types[i].String()}
	}
	for r, row := range head.Rows {
		cells := make([]*string, len(row))
		for i, c := range row {
			if !c.Missing {
				v := c.Value
				cells[i] = &v
			}
		}
		out.Head[r] = cells
	}
	return out
}
