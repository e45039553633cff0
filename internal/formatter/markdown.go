// Package formatter renders articles as aligned Markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"aacrawler/internal/models"
	"aacrawler/pkg/utils"
)

// DefaultCellWidth is the display width at which long cells are truncated.
const DefaultCellWidth = 60

var articleHeader = []string{"#", "Created At", "City", "Category", "Title", "Image"}

// TableFormatter renders article lists.
type TableFormatter struct {
	strings   *utils.StringHelper
	cellWidth int
}

// NewTableFormatter creates a formatter truncating cells at cellWidth display
// columns. A non-positive width selects DefaultCellWidth.
func NewTableFormatter(cellWidth int) *TableFormatter {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}

	return &TableFormatter{
		strings:   utils.NewStringHelper(),
		cellWidth: cellWidth,
	}
}

// ArticlesTable renders one row per article, in order, below a header row.
func (f *TableFormatter) ArticlesTable(articles []models.Article) string {
	rows := make([][]string, 0, len(articles)+2)
	rows = append(rows, articleHeader, nil)

	for i, a := range articles {
		image := ""
		if a.HasImage() {
			image = a.Images[0]
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.cell(a.CreatedAt),
			f.cell(a.City),
			f.cell(a.Category),
			f.cell(a.Title),
			image,
		})
	}

	return strings.Join(alignTable(rows, 1), "\n") + "\n"
}

// cell makes s safe for a single table cell and bounds its width.
func (f *TableFormatter) cell(s string) string {
	s = f.strings.NormalizeWhitespace(s)
	s = strings.ReplaceAll(s, "|", `\|`)

	return runewidth.Truncate(s, f.cellWidth, utils.Ellipsis)
}

// alignTable pads every cell to its column's display width. The row at
// separatorRowIdx is rendered as dashes; pass -1 for none.
func alignTable(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
				sb.WriteString(" |")

				continue
			}

			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			// Pad with spaces based on display width
			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
