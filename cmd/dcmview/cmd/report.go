package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpfielding/dcmview/pkg/dcm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			MarginTop(1)
)

// renderReport lays out the metadata as a two column table with the pixel
// decoding outcome underneath
func renderReport(title string, m dcm.Metadata, pixelErr error) string {
	var rows []string
	for _, f := range m.Fields() {
		style := valueStyle
		if f.Value == dcm.NotAvailable {
			style = missingStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.Label), style.Render(f.Value)))
	}
	parts := []string{titleStyle.Render(title), strings.Join(rows, "\n")}
	if pixelErr != nil {
		parts = append(parts, errorStyle.Render("Pixel data: "+pixelErr.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
