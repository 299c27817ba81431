package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/sheetpeek/internal/session"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateBusy:
		return m.viewBusy()
	case stateTable:
		return m.viewTable()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 sheetpeek - Spreadsheet Viewer"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select an XLSX, XLS or CSV file to open"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewBusy() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 Working..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.busyLabel))

	return BoxStyle.Render(s.String())
}

func (m Model) viewTable() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 " + filepath.Base(m.session.FileName())))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("%s • %s", strings.ToUpper(string(m.session.Format())), humanize.Bytes(uint64(m.session.Size())))))
	s.WriteString("\n")
	s.WriteString(m.viewTabs())
	s.WriteString("\n")

	stats := m.session.Stats()
	s.WriteString(StatsStyle.Render(fmt.Sprintf("Rows: %d • Columns: %d • Sheets: %d", stats.TotalRows, stats.TotalColumns, stats.TotalSheets)))
	s.WriteString("\n")

	if stats.TotalRows == 0 {
		s.WriteString(TableBorderStyle.Render(StatsStyle.Render("No data rows below the header.")))
	} else {
		s.WriteString(TableBorderStyle.Render(m.table.View()))
	}
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}
	s.WriteString(m.help.View(keys))

	return s.String()
}

func (m Model) viewTabs() string {
	names := m.session.SheetNames()
	tabs := make([]string, len(names))
	for i, name := range names {
		if name == m.session.ActiveSheet() {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(session.Message(m.err))
	s.WriteString("\n\n")

	if m.session.State() == session.StateLoaded {
		s.WriteString(HelpStyle.Render("Press esc to return to the table • r to close the file • q to quit"))
	} else {
		s.WriteString(HelpStyle.Render("Press esc to pick another file • q to quit"))
	}

	return BoxStyle.Render(s.String())
}
