// Package render formats drive reports and notices for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/messages"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	eligibleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1).
			Margin(1, 0).
			Width(64)

	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))
)

var columnWidths = []int{24, 10, 10, 12, 10, 24}

// DriveRow pairs a drive's facts with its verdict.
type DriveRow struct {
	Facts   drive.Facts         `json:"facts"`
	Verdict eligibility.Verdict `json:"verdict"`
}

// DriveTable writes rows as an aligned table.
func DriveTable(w io.Writer, rows []DriveRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, messages.DrivesNone)
		return err
	}
	header := []string{
		messages.DriveTableHeaderPath,
		messages.DriveTableHeaderSize,
		messages.DriveTableHeaderFree,
		messages.DriveTableHeaderFilesystem,
		messages.DriveTableHeaderRemovable,
		messages.DriveTableHeaderVerdict,
	}
	if _, err := fmt.Fprintln(w, makeRow(header, headerStyle)); err != nil {
		return err
	}
	for _, row := range rows {
		style := rejectedStyle
		if row.Verdict.Eligible {
			style = eligibleStyle
		}
		cols := []string{
			row.Facts.Path,
			drive.FormatBytes(row.Facts.TotalBytes),
			drive.FormatBytes(row.Facts.FreeBytes),
			row.Facts.Filesystem,
			removableLabel(row.Facts.Removable),
			row.Verdict.Reason.String(),
		}
		if _, err := fmt.Fprintln(w, makeRow(cols, style)); err != nil {
			return err
		}
	}
	return nil
}

// DriveJSON writes rows as an indented JSON array.
func DriveJSON(w io.Writer, rows []DriveRow) error {
	if rows == nil {
		rows = []DriveRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Banner renders a titled box around body.
func Banner(title string, body string) string {
	content := bannerTitleStyle.Render(title)
	if body != "" {
		content += "\n\n" + body
	}
	return bannerStyle.Render(content)
}

// Warn writes a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, format, args...)
}

// Error writes msg prefixed for abort output in red.
func Error(w io.Writer, msg string) {
	_, _ = color.New(color.FgRed).Fprintf(w, messages.AbortPrefixFmt, msg)
}

func removableLabel(removable bool) string {
	if removable {
		return messages.DriveRemovableYes
	}
	return messages.DriveRemovableNo
}

func makeRow(cols []string, style lipgloss.Style) string {
	styled := make([]string, len(cols))
	for i, col := range cols {
		if i < len(columnWidths) {
			col = lipgloss.NewStyle().Width(columnWidths[i]).Render(col)
		}
		styled[i] = style.Render(col)
	}
	return strings.TrimRight(strings.Join(styled, " "), " ")
}
