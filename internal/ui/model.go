package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/tidy/internal/converter"
	"github.com/nconklindev/tidy/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateOptions
	stateExporting
	stateComplete
	stateError
)

// Option rows on the options screen, in display order.
const (
	optRemoveDuplicates = iota
	optFillMissing
	optShowChart
	optTarget
	optCount
)

// Settings carries the configured limits into the UI.
type Settings struct {
	MaxFileSize int64
	PreviewRows int
	ChartRows   int
	OutputDir   string
}

type Model struct {
	state        state
	settings     Settings
	filepicker   filepicker.Model
	selectedFile string
	loaded       *types.Table
	opts         types.FileOptions
	result       *types.ProcessResult
	savedPath    string
	filesDone    int
	cursor       int
	err          error
	width        int
	height       int
}

type fileLoadedMsg struct {
	table *types.Table
	err   error
}

type exportDoneMsg struct {
	result *types.ProcessResult
	path   string
	err    error
}

func InitialModel(settings Settings) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.CurrentDirectory, _ = os.Getwd()

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return Model{
		state:      stateFilePicker,
		settings:   settings,
		filepicker: fp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Subtract space for title, subtitle, help text, and padding
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}

		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateOptions:
			return m.updateOptions(msg)

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				return m, tea.Quit
			case "n", "enter":
				return m.nextFile()
			}
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.loaded = msg.table
		m.opts = types.FileOptions{PreviewRows: m.settings.PreviewRows}
		m.cursor = 0
		m.state = stateOptions
		return m.refresh(), nil

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.savedPath = msg.path
		m.filesDone++
		m.state = stateComplete
		return m, nil
	}

	// Handle filepicker updates
	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, m.loadFile(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		return m.nextFile()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < optCount-1 {
			m.cursor++
		}
	case " ", "x":
		m = m.toggle(m.cursor)
	case "d":
		m = m.toggle(optRemoveDuplicates)
	case "f":
		m = m.toggle(optFillMissing)
	case "c":
		m = m.toggle(optShowChart)
	case "t":
		m = m.toggle(optTarget)
	case "enter":
		m.state = stateExporting
		return m, m.exportFile()
	}
	return m, nil
}

func (m Model) toggle(opt int) Model {
	switch opt {
	case optRemoveDuplicates:
		m.opts.RemoveDuplicates = !m.opts.RemoveDuplicates
	case optFillMissing:
		m.opts.FillMissing = !m.opts.FillMissing
	case optShowChart:
		m.opts.ShowChart = !m.opts.ShowChart
	case optTarget:
		if m.opts.Target == types.FormatCSV {
			m.opts.Target = types.FormatXLSX
		} else {
			m.opts.Target = types.FormatCSV
		}
	}
	return m.refresh()
}

// refresh recomputes the preview from the loaded table, which is never
// modified, so toggling a step off restores the original rows.
func (m Model) refresh() Model {
	opts := m.opts
	opts.Export = false

	res, err := converter.Run(filepath.Base(m.selectedFile), m.loaded, opts)
	if err != nil {
		m.err = err
		m.state = stateError
		return m
	}
	m.result = res
	return m
}

// nextFile drops everything about the current file and returns to the picker.
func (m Model) nextFile() (tea.Model, tea.Cmd) {
	m.state = stateFilePicker
	m.selectedFile = ""
	m.loaded = nil
	m.result = nil
	m.savedPath = ""
	m.err = nil
	m.opts = types.FileOptions{}
	return m, m.filepicker.Init()
}

func (m Model) loadFile(path string) tea.Cmd {
	maxSize := m.settings.MaxFileSize
	return func() tea.Msg {
		up, err := converter.ReadUpload(path, maxSize)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		table, err := converter.LoadUpload(up)
		return fileLoadedMsg{table: table, err: err}
	}
}

func (m Model) exportFile() tea.Cmd {
	input := m.selectedFile
	name := filepath.Base(input)
	loaded := m.loaded
	opts := m.opts
	opts.Export = true

	dir := m.settings.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return func() tea.Msg {
		res, err := converter.Run(name, loaded, opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := converter.ExportPath(dir, res.Export.Filename, input)
		if err := converter.WriteExport(path, res.Export); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{result: res, path: path}
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateOptions:
		return m.viewOptions()
	case stateExporting:
		return m.viewExporting()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	title := TitleStyle.Render("🧹 Tidy - File Converter and Cleaner")
	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a CSV or XLSX file to clean and convert"))
	if m.filesDone > 0 {
		s.WriteString("\n")
		s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ %d file(s) exported this session", m.filesDone)))
	}
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewOptions() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(fmt.Sprintf("🧹 %s - Preview", filepath.Base(m.selectedFile))))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d rows • %d columns", m.result.Cleaned.NumRows(), len(m.result.Cleaned.Columns))))
	s.WriteString("\n")
	s.WriteString(RenderPreview(m.result.Preview))
	s.WriteString("\n\n")

	if m.opts.RemoveDuplicates {
		s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Duplicates removed: %d", m.result.DuplicatesRemoved)))
		s.WriteString("\n")
	}
	if m.opts.FillMissing {
		s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Missing values filled with mean: %d", m.result.CellsFilled)))
		s.WriteString("\n")
	}

	labels := []string{
		"Remove duplicates",
		"Fill missing values",
		"Show chart",
		"Convert to",
	}
	checked := []bool{m.opts.RemoveDuplicates, m.opts.FillMissing, m.opts.ShowChart}

	s.WriteString("\n")
	for i, label := range labels {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		var line string
		if i == optTarget {
			line = fmt.Sprintf("%s %s: %s", cursor, label, targetLabel(m.opts.Target))
		} else {
			mark := " "
			if checked[i] {
				mark = "✓"
			}
			line = fmt.Sprintf("%s [%s] %s", cursor, mark, label)
		}

		switch {
		case m.cursor == i:
			line = SelectedStyle.Render(line)
		case i < len(checked) && checked[i]:
			line = CheckedStyle.Render(line)
		default:
			line = UnselectedStyle.Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	if m.opts.ShowChart {
		s.WriteString("\n")
		s.WriteString(RenderChart(m.result.Chart, m.settings.ChartRows, m.width-8))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • space: toggle • d/f/c/t: shortcuts • enter: export • esc: other file • q: quit"))

	return BoxStyle.Render(s.String())
}

func targetLabel(f types.Format) string {
	if f == types.FormatXLSX {
		return "Excel (.xlsx)"
	}
	return "CSV (.csv)"
}

func (m Model) viewExporting() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧹 Exporting..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Writing %s as %s", filepath.Base(m.selectedFile), targetLabel(m.opts.Target)))

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Processing Complete!"))
	s.WriteString("\n\n")

	// Truncate paths if they're too long
	maxPathLen := m.width - 20 // Leave room for padding and borders
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	inputPath := m.selectedFile
	if len(inputPath) > maxPathLen {
		inputPath = "..." + inputPath[len(inputPath)-maxPathLen+3:]
	}

	outputPath := m.savedPath
	if len(outputPath) > maxPathLen {
		outputPath = "..." + outputPath[len(outputPath)-maxPathLen+3:]
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", inputPath))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s\n", outputPath)))
	s.WriteString(fmt.Sprintf("Type:   %s\n", m.result.Export.MIMEType))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Rows written: %d\n", m.result.Cleaned.NumRows()))
	s.WriteString(fmt.Sprintf("Duplicates removed: %d\n", m.result.DuplicatesRemoved))
	s.WriteString(fmt.Sprintf("Values filled: %d\n", m.result.CellsFilled))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("n: another file • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("n: another file • q: quit"))

	return BoxStyle.Render(s.String())
}
