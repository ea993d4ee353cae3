package evaluation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Render formats the report as a styled terminal block: confusion
// matrix first, then per-class metrics and overall accuracy.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Classification report"))
	b.WriteString("\n\n")

	// Confusion matrix, actual rows x predicted columns.
	matrix := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render("actual \\ predicted"),
			headerStyle.Render(string(r.Labels[0])),
			headerStyle.Render(string(r.Labels[1])),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render(string(r.Labels[0])),
			cellStyle.Render(fmt.Sprintf("%6d", r.Confusion[0][0])),
			cellStyle.Render(fmt.Sprintf("%6d", r.Confusion[0][1])),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render(string(r.Labels[1])),
			cellStyle.Render(fmt.Sprintf("%6d", r.Confusion[1][0])),
			cellStyle.Render(fmt.Sprintf("%6d", r.Confusion[1][1])),
		),
	)
	b.WriteString(boxStyle.Render(matrix))
	b.WriteString("\n\n")

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("class"),
		headerStyle.Render("precision"),
		headerStyle.Render("recall"),
		headerStyle.Render("f1"),
	))
	for _, label := range r.Labels {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render(string(label)),
			cellStyle.Render(fmt.Sprintf("%9.3f", r.Precision(label))),
			cellStyle.Render(fmt.Sprintf("%6.3f", r.Recall(label))),
			cellStyle.Render(fmt.Sprintf("%6.3f", r.F1(label))),
		))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("accuracy: %.3f over %d sequences\n", r.Accuracy(), r.Total()))
	return b.String()
}
