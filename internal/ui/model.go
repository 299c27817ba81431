package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/nconklindev/sheetpeek/internal/converter"
	"github.com/nconklindev/sheetpeek/internal/logging"
	"github.com/nconklindev/sheetpeek/internal/session"
	"github.com/nconklindev/sheetpeek/internal/types"
	"github.com/nconklindev/sheetpeek/internal/workbook"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateBusy
	stateTable
	stateError
)

// Lines used by everything around the table: title, file line, tabs,
// stats, status, help and borders.
const chromeHeight = 14

type Options struct {
	Session        *session.Session
	OutputDir      string
	MaxColumnWidth int
	ShowHidden     bool
	StartDir       string
	// InitialFile skips the picker and loads this file on start.
	InitialFile string
	Logger      *slog.Logger
}

type Model struct {
	state       state
	filepicker  filepicker.Model
	spinner     spinner.Model
	table       table.Model
	help        help.Model
	session     *session.Session
	outDir      string
	maxColWidth int
	initialFile string
	busyLabel   string
	status      string
	err         error
	width       int
	height      int
	logger      *slog.Logger
}

type fileLoadedMsg struct {
	err error
}

type sheetSwitchedMsg struct {
	err error
}

type exportDoneMsg struct {
	result *types.ExportResult
	err    error
}

func InitialModel(opts Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = workbook.Extensions
	fp.ShowHidden = opts.ShowHidden
	fp.CurrentDirectory = opts.StartDir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory, _ = os.Getwd()
	}

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(muted)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))

	tbl := table.New(table.WithFocused(true), table.WithHeight(10))
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(accent).
		BorderBottom(true).
		Bold(true).
		Foreground(highlight)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#1F1F1F")).
		Background(accent).
		Bold(false)
	tbl.SetStyles(ts)

	sess := opts.Session
	if sess == nil {
		sess = session.New(session.WithLogger(opts.Logger))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	maxWidth := opts.MaxColumnWidth
	if maxWidth <= 0 {
		maxWidth = 30
	}

	m := Model{
		state:       stateFilePicker,
		filepicker:  fp,
		spinner:     sp,
		table:       tbl,
		help:        help.New(),
		session:     sess,
		outDir:      opts.OutputDir,
		maxColWidth: maxWidth,
		initialFile: opts.InitialFile,
		logger:      logger,
	}
	if m.initialFile != "" {
		m.state = stateBusy
		m.busyLabel = "Loading " + filepath.Base(m.initialFile)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initialFile != "" {
		return tea.Batch(m.filepicker.Init(), m.spinner.Tick, m.loadFile(m.initialFile))
	}
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Set filepicker height based on available space
		height := msg.Height - 14
		if height < 5 {
			height = 5 // Minimum height
		}
		m.filepicker.SetHeight(height)
		m.resizeTable()

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateBusy:
			// One operation at a time; input waits until it finishes.
			return m, nil

		case stateFilePicker:
			if msg.String() == "q" {
				return m, tea.Quit
			}

		case stateTable:
			return m.handleTableKey(msg)

		case stateError:
			switch {
			case key.Matches(msg, keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, keys.Back):
				return m.leaveError()
			case key.Matches(msg, keys.Remove):
				return m.removeFile()
			}
			return m, nil
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.refreshTable()
		m.state = stateTable
		return m, nil

	case sheetSwitchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.status = ""
		m.refreshTable()
		m.state = stateTable
		return m, nil

	case exportDoneMsg:
		m.state = stateTable
		if msg.err != nil {
			m.status = ErrorStyle.Render("✗ Export failed: " + session.Message(msg.err))
			return m, nil
		}
		m.status = SuccessStyle.Render(fmt.Sprintf("✓ Saved %s (%d rows)", msg.result.OutputFile, msg.result.RowsWritten))
		return m, nil

	case spinner.TickMsg:
		if m.state != stateBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Handle filepicker updates
	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			return m.startBusy("Loading "+filepath.Base(path), m.loadFile(path))
		}

		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.err = fmt.Errorf("%w: %s", workbook.ErrUnsupportedFileType, filepath.Base(path))
			m.state = stateError
			return m, nil
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextSheet):
		return m.switchSheet(1)

	case key.Matches(msg, keys.PrevSheet):
		return m.switchSheet(-1)

	case key.Matches(msg, keys.ExportCSV):
		return m.startBusy("Exporting CSV", m.export(converter.ExportCSV))

	case key.Matches(msg, keys.ExportJSON):
		return m.startBusy("Exporting JSON", m.export(converter.ExportJSON))

	case key.Matches(msg, keys.Remove):
		return m.removeFile()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) removeFile() (tea.Model, tea.Cmd) {
	m.session.Reset()
	m.status = ""
	m.err = nil
	m.state = stateFilePicker
	return m, m.filepicker.Init()
}

// leaveError returns to the table when a file is still loaded (a failed
// sheet switch) and to the picker otherwise.
func (m Model) leaveError() (tea.Model, tea.Cmd) {
	m.err = nil
	if m.session.State() == session.StateLoaded {
		m.state = stateTable
		return m, nil
	}
	m.state = stateFilePicker
	return m, m.filepicker.Init()
}

func (m Model) startBusy(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = stateBusy
	m.busyLabel = label
	m.status = ""
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) switchSheet(step int) (tea.Model, tea.Cmd) {
	names := m.session.SheetNames()
	if len(names) < 2 {
		return m, nil
	}

	current := slices.Index(names, m.session.ActiveSheet())
	next := names[(current+step+len(names))%len(names)]
	return m.startBusy("Opening "+next, m.loadSheet(next))
}

func (m Model) loadFile(path string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return fileLoadedMsg{err: sess.LoadFile(path)}
	}
}

func (m Model) loadSheet(name string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return sheetSwitchedMsg{err: sess.SwitchSheet(name)}
	}
}

func (m Model) export(kind converter.ExportKind) tea.Cmd {
	sess := m.session
	dir := m.outDir
	return func() tea.Msg {
		result, err := sess.ExportTo(kind, dir)
		return exportDoneMsg{result: result, err: err}
	}
}

// refreshTable rebuilds the table widget from the session's active sheet.
func (m *Model) refreshTable() {
	t := m.session.Table()
	if t == nil {
		m.table.SetRows(nil)
		m.table.SetColumns(nil)
		return
	}

	labels, grid := converter.DisplayGrid(t)

	columns := make([]table.Column, len(labels))
	for i, label := range labels {
		if label == "" && i < len(t.Headers) {
			label = fmt.Sprintf("Column %d", i+1)
		}
		width := lipgloss.Width(label)
		for _, row := range grid {
			width = max(width, lipgloss.Width(row[i]))
		}
		columns[i] = table.Column{Title: label, Width: min(max(width, 3), m.maxColWidth)}
	}

	rows := make([]table.Row, len(grid))
	for i, line := range grid {
		rows[i] = table.Row(line)
	}

	// Rows must never be wider than the columns while they are swapped.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.resizeTable()
}

func (m *Model) resizeTable() {
	if m.height == 0 {
		return
	}
	m.table.SetHeight(max(m.height-chromeHeight, 5))
	m.table.SetWidth(max(m.width-4, 20))
}
