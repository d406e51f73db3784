package converter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nconklindev/tidy/internal/types"

	"github.com/google/uuid"
)

// PreviewRows is the default number of rows kept in ProcessResult.Preview.
const PreviewRows = 5

// ReadUpload reads a whole file into memory. Files over maxSize bytes are
// rejected; a maxSize of zero or less disables the check.
func ReadUpload(path string, maxSize int64) (types.Upload, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return types.Upload{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return types.Upload{}, fmt.Errorf("read %s: %w", name, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return types.Upload{}, fmt.Errorf("%s: file too large (limit %d bytes)", name, maxSize)
	}

	return types.Upload{Name: name, Data: data}, nil
}

// Process runs one file through load, the selected cleaning steps, the chart
// projection and the export.
func Process(up types.Upload, opts types.FileOptions) (*types.ProcessResult, error) {
	logger := passLogger(up.Name)
	logger.Debug("pass started", "bytes", len(up.Data))

	loaded, err := LoadUpload(up)
	if err != nil {
		logger.Warn("load failed", "error", err)
		return nil, err
	}
	logger.Debug("table loaded", "columns", len(loaded.Columns), "rows", loaded.NumRows())

	return run(logger, up.Name, loaded, opts)
}

// Run applies opts to a table that is already loaded. loaded is not
// modified, so it can be run again with different options.
func Run(name string, loaded *types.Table, opts types.FileOptions) (*types.ProcessResult, error) {
	return run(passLogger(name), name, loaded, opts)
}

func passLogger(name string) *slog.Logger {
	return slog.With("pass_id", uuid.NewString(), "file", name)
}

// Duplicates are removed before means are taken, so dropped rows never
// contribute to a fill value.
func run(logger *slog.Logger, name string, loaded *types.Table, opts types.FileOptions) (*types.ProcessResult, error) {
	res := &types.ProcessResult{
		InputFile: name,
		Loaded:    loaded,
		Cleaned:   loaded,
	}

	if opts.RemoveDuplicates {
		res.Cleaned = RemoveDuplicates(res.Cleaned)
		res.DuplicatesRemoved = loaded.NumRows() - res.Cleaned.NumRows()
		logger.Debug("duplicates removed", "count", res.DuplicatesRemoved)
	}

	if opts.FillMissing {
		before := res.Cleaned.MissingCount()
		res.Cleaned = FillMissingNumeric(res.Cleaned)
		res.CellsFilled = before - res.Cleaned.MissingCount()
		logger.Debug("missing values filled", "count", res.CellsFilled)
	}

	previewRows := opts.PreviewRows
	if previewRows <= 0 {
		previewRows = PreviewRows
	}
	res.Preview = res.Cleaned.Head(previewRows)

	if opts.ShowChart {
		if chart, ok := NumericPreview(res.Cleaned); ok {
			res.Chart = chart
		} else {
			logger.Debug("no numeric columns to chart")
		}
	}

	if opts.Export {
		export, err := Export(res.Cleaned, opts.Target, name)
		if err != nil {
			logger.Warn("export failed", "error", err)
			return nil, err
		}
		res.Export = export
		logger.Debug("export ready", "output", export.Filename, "bytes", len(export.Data))
	}

	logger.Info("pass complete",
		"rows", res.Cleaned.NumRows(),
		"duplicates_removed", res.DuplicatesRemoved,
		"cells_filled", res.CellsFilled,
	)

	return res, nil
}

// ProcessBatch handles each upload on its own, in order. A failing file is
// reported in its outcome and never stops the files after it.
func ProcessBatch(uploads []types.Upload, optsFor func(name string) types.FileOptions) []types.FileOutcome {
	outcomes := make([]types.FileOutcome, 0, len(uploads))

	for _, up := range uploads {
		res, err := Process(up, optsFor(up.Name))
		outcomes = append(outcomes, types.FileOutcome{Name: up.Name, Result: res, Err: err})
	}

	return outcomes
}

// ProcessFiles reads and processes each path in order. Read failures are
// reported like any other per-file error. Outcomes line up with paths.
func ProcessFiles(paths []string, maxSize int64, optsFor func(name string) types.FileOptions) []types.FileOutcome {
	outcomes := make([]types.FileOutcome, 0, len(paths))

	for _, path := range paths {
		up, err := ReadUpload(path, maxSize)
		if err != nil {
			slog.Warn("read failed", "path", path, "error", err)
			outcomes = append(outcomes, types.FileOutcome{Name: filepath.Base(path), Err: err})
			continue
		}

		res, err := Process(up, optsFor(up.Name))
		outcomes = append(outcomes, types.FileOutcome{Name: up.Name, Result: res, Err: err})
	}

	return outcomes
}
