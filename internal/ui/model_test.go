package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/tidy/internal/converter"
	"github.com/nconklindev/tidy/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "name,age\nAlice,30\nBob,\nAlice,30\n"

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model sitting on the options screen for testCSV.
func loadedModel(t *testing.T, outDir string) Model {
	t.Helper()

	table, err := converter.Load([]byte(testCSV), "csv")
	require.NoError(t, err)

	m := InitialModel(Settings{PreviewRows: 5, ChartRows: 10, OutputDir: outDir})
	m.selectedFile = filepath.Join(outDir, "people.csv")

	next, _ := m.Update(fileLoadedMsg{table: table})
	m = next.(Model)
	require.Equal(t, stateOptions, m.state)
	return m
}

func TestModel_FileLoaded(t *testing.T) {
	m := loadedModel(t, t.TempDir())

	require.NotNil(t, m.result)
	assert.Equal(t, 3, m.result.Cleaned.NumRows())
	assert.Equal(t, 5, m.opts.PreviewRows)
	assert.Contains(t, m.View(), "people.csv")
}

func TestModel_FileLoadError(t *testing.T) {
	m := InitialModel(Settings{})

	next, _ := m.Update(fileLoadedMsg{err: errors.New("boom")})
	m = next.(Model)

	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_ToggleKeepsLoadedTable(t *testing.T) {
	m := loadedModel(t, t.TempDir())

	next, _ := m.Update(runes("d"))
	m = next.(Model)
	assert.True(t, m.opts.RemoveDuplicates)
	assert.Equal(t, 1, m.result.DuplicatesRemoved)
	assert.Equal(t, 2, m.result.Cleaned.NumRows())
	assert.Equal(t, 3, m.loaded.NumRows())

	next, _ = m.Update(runes("d"))
	m = next.(Model)
	assert.False(t, m.opts.RemoveDuplicates)
	assert.Equal(t, 3, m.result.Cleaned.NumRows())
}

func TestModel_ShortcutsAndCursor(t *testing.T) {
	m := loadedModel(t, t.TempDir())

	next, _ := m.Update(runes("f"))
	m = next.(Model)
	assert.True(t, m.opts.FillMissing)
	assert.Equal(t, 1, m.result.CellsFilled)

	next, _ = m.Update(runes("t"))
	m = next.(Model)
	assert.Equal(t, types.FormatXLSX, m.opts.Target)

	// Move to "Show chart" and toggle it with space.
	for range 2 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	assert.Equal(t, optShowChart, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(Model)
	assert.True(t, m.opts.ShowChart)
	require.NotNil(t, m.result.Chart)
	assert.Contains(t, m.View(), "age")
}

func TestModel_Export(t *testing.T) {
	dir := t.TempDir()
	m := loadedModel(t, dir)

	next, _ := m.Update(runes("d"))
	m = next.(Model)
	next, _ = m.Update(runes("t"))
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, stateExporting, m.state)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	next, _ = m.Update(msg)
	m = next.(Model)
	assert.Equal(t, stateComplete, m.state)
	assert.Equal(t, 1, m.filesDone)
	assert.Equal(t, filepath.Join(dir, "people.xlsx"), m.savedPath)

	_, err := os.Stat(m.savedPath)
	require.NoError(t, err)
	assert.Contains(t, m.View(), "Duplicates removed: 1")

	// Starting over forgets the file but keeps the session count.
	next, _ = m.Update(runes("n"))
	m = next.(Model)
	assert.Equal(t, stateFilePicker, m.state)
	assert.Nil(t, m.loaded)
	assert.Equal(t, 1, m.filesDone)
}

func TestModel_ExportNeverReplacesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(input, []byte(testCSV), 0o644))

	// No output directory: exports go next to the input.
	m := loadedModel(t, "")
	m.selectedFile = input

	next, _ := m.Update(runes("d"))
	m = next.(Model)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)
	require.Equal(t, stateComplete, m.state)
	assert.Equal(t, filepath.Join(dir, "people_cleaned.csv"), m.savedPath)

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, testCSV, string(original))

	cleaned, err := os.ReadFile(m.savedPath)
	require.NoError(t, err)
	assert.Equal(t, "name,age\nAlice,30\nBob,\n", string(cleaned))
}

func TestModel_ExportFailure(t *testing.T) {
	m := loadedModel(t, filepath.Join(t.TempDir(), "missing"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, stateError, m.state)

	var serr *converter.SerializationError
	assert.ErrorAs(t, m.err, &serr)
}
