package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nconklindev/tidy/internal/converter"
	"github.com/nconklindev/tidy/internal/types"
	"github.com/nconklindev/tidy/internal/ui"

	"github.com/spf13/cobra"
)

const chartWidth = 72

type convertReport struct {
	File              string `json:"file"`
	Output            string `json:"output,omitempty"`
	MIMEType          string `json:"mime_type,omitempty"`
	Rows              int    `json:"rows"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	CellsFilled       int    `json:"cells_filled"`
	Error             string `json:"error,omitempty"`
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		dedup  bool
		fill   bool
		chart  bool
		to     string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Clean and convert files without the interactive UI",
		Long: "Processes each file on its own: optional duplicate removal, then optional mean fill of " +
			"numeric gaps, then export next to the input (or into --out-dir). An export never replaces " +
			"an input file; it gets a _cleaned suffix instead. A failing file does not stop the others; " +
			"the command exits non-zero if any file failed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := types.ParseFormat(to)
			if !ok {
				return fmt.Errorf("unsupported target format %q: use 'csv' or 'xlsx'", to)
			}

			if outDir == "" {
				outDir = a.cfg.Files.OutputDir
			}

			opts := types.FileOptions{
				RemoveDuplicates: dedup,
				FillMissing:      fill,
				ShowChart:        chart,
				Export:           true,
				Target:           target,
				PreviewRows:      a.cfg.Files.PreviewRows,
			}
			outcomes := converter.ProcessFiles(args, a.cfg.Files.MaxFileSize, func(string) types.FileOptions {
				return opts
			})

			reports := make([]convertReport, len(outcomes))
			written := make(map[string]string, len(outcomes))
			failed := 0
			for i, out := range outcomes {
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(args[i])
				}

				dest := ""
				if out.Err == nil {
					dest = converter.ExportPath(dir, out.Result.Export.Filename, args...)
				}
				reports[i] = report(out, args[i], dest, written)
				if reports[i].Error != "" {
					failed++
				}
			}

			w := cmd.OutOrStdout()
			if getOutputFormat(cmd) == "json" {
				if err := printJSON(w, reports); err != nil {
					return err
				}
			} else {
				printReports(w, reports, outcomes, a.cfg.Files.ChartRows)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dedup, "dedup", false, "Remove duplicate rows")
	cmd.Flags().BoolVar(&fill, "fill", false, "Fill missing numeric values with the column mean")
	cmd.Flags().BoolVar(&chart, "chart", false, "Chart the first two numeric columns")
	cmd.Flags().StringVar(&to, "to", "csv", "Target format: csv or xlsx")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for converted files (default: next to each input)")

	return cmd
}

// report writes a successful outcome's export to dest and summarizes it.
// A write failure, or a dest already written earlier in the same run, turns
// into that file's error. written maps each destination to its input.
func report(out types.FileOutcome, input, dest string, written map[string]string) convertReport {
	r := convertReport{File: out.Name}
	if out.Err != nil {
		r.Error = out.Err.Error()
		return r
	}

	res := out.Result
	r.Rows = res.Cleaned.NumRows()
	r.DuplicatesRemoved = res.DuplicatesRemoved
	r.CellsFilled = res.CellsFilled

	key := dest
	if abs, err := filepath.Abs(dest); err == nil {
		key = abs
	}
	if prev, ok := written[key]; ok {
		r.Error = fmt.Sprintf("%s was already written from %s", dest, prev)
		return r
	}

	if err := converter.WriteExport(dest, res.Export); err != nil {
		r.Error = err.Error()
		return r
	}
	written[key] = input
	r.Output = dest
	r.MIMEType = res.Export.MIMEType
	return r
}

func printReports(w io.Writer, reports []convertReport, outcomes []types.FileOutcome, chartRows int) {
	for i, r := range reports {
		if r.Error != "" {
			_, _ = fmt.Fprintf(w, "✗ %s: %s\n", r.File, r.Error)
			continue
		}

		_, _ = fmt.Fprintf(w, "✓ %s → %s (%d rows, %d duplicates removed, %d values filled)\n",
			r.File, r.Output, r.Rows, r.DuplicatesRemoved, r.CellsFilled)

		if res := outcomes[i].Result; res.Chart != nil {
			_, _ = fmt.Fprintln(w, ui.RenderChart(res.Chart, chartRows, chartWidth))
		}
	}
}
