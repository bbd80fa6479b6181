package storage

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"vacancy-reporter/services"
)

// ConsoleTable renders a query result as an ASCII table: a rule after
// every row, left alignment, cells wrapped at 20 characters, the layout
// the report consumers are used to.
type ConsoleTable struct {
	out io.Writer
}

// NewConsoleTable creates a renderer writing to out.
func NewConsoleTable(out io.Writer) *ConsoleTable {
	return &ConsoleTable{out: out}
}

// Render writes the view to the output writer.
func (c *ConsoleTable) Render(view *services.TableView) error {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(view.Headers)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(true)
	table.SetColWidth(20)

	for _, row := range view.Rows {
		table.Append(row)
	}

	table.Render()
	return nil
}
