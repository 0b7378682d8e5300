package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/degrees/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleKey       = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	styleUndefined = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// undefinedText is printed for statistics that have no data behind them.
const undefinedText = "undefined"

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Report Output
// =============================================================================

// renderReport writes the human-readable form of r to w: a header line, one
// table row per distance from 1 to the maximum, and the summary figures.
func renderReport(w io.Writer, r *report.Report, cached bool) {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Degrees of separation"))
	b.WriteString("\n")
	b.WriteString(statsLine(r.Nodes, r.Edges, cached))
	b.WriteString("\n\n")

	if len(r.Stats.Histogram) > 0 {
		b.WriteString(histogramTable(r))
		b.WriteString("\n\n")
	} else {
		b.WriteString(StyleDim.Render("  no connected pairs"))
		b.WriteString("\n\n")
	}

	writeKeyValue(&b, "Mean separation", formatFloat(r.Stats.Mean, 2, ""))
	writeKeyValue(&b, "Max distance", maxDistance(r))
	writeKeyValue(&b, "Std deviation", formatFloat(r.Stats.StdDev, 2, ""))
	writeKeyValue(&b, fmt.Sprintf("Within %d hops", r.Stats.Threshold), formatFloat(r.Stats.PercentageWithin, 2, "%"))
	writeKeyValue(&b, "Valid pairs", fmt.Sprintf("%d of %d", r.Stats.Pairs, r.OrderedPairs))
	writeKeyValue(&b, "Coverage", formatFloat(r.Coverage, 2, "%"))

	fmt.Fprint(w, b.String())
}

func histogramTable(r *report.Report) string {
	rows := make([][]string, 0, len(r.Stats.Histogram))
	for _, bucket := range r.Stats.Histogram {
		rows = append(rows, []string{
			strconv.Itoa(bucket.Distance),
			strconv.FormatInt(bucket.Count, 10),
			strconv.FormatFloat(bucket.Percentage, 'f', 2, 64) + "%",
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Degrees", "Pairs", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cell.Foreground(colorCyan)
			}
			return cell.Align(lipgloss.Right)
		})

	return t.Render()
}

func writeKeyValue(b *strings.Builder, key, value string) {
	b.WriteString(styleKey.Render(key))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func maxDistance(r *report.Report) string {
	if !r.Defined() {
		return styleUndefined.Render(undefinedText)
	}
	return StyleNumber.Render(strconv.Itoa(r.Stats.MaxDistance))
}

// formatFloat renders an optional statistic, printing "undefined" for nil.
func formatFloat(v *float64, prec int, suffix string) string {
	if v == nil {
		return styleUndefined.Render(undefinedText)
	}
	return StyleNumber.Render(strconv.FormatFloat(*v, 'f', prec, 64) + suffix)
}

// statsLine renders graph size and cache status on a single line.
func statsLine(nodeCount, edgeCount int, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}
