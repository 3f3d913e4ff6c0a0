package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"autolist/lister/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const maxCellWidth = 72

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderRecord(w io.Writer, record *domain.ProductRecord) {
	t := newTable(w)
	t.SetTitle("Product")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxCellWidth},
	})

	t.AppendRow(table.Row{"Title", record.Title})
	t.AppendRow(table.Row{"Price", record.Price})
	t.AppendRow(table.Row{"Description", text.Trim(record.Description, maxCellWidth*4)})
	t.AppendSeparator()

	keys := make([]string, 0, len(record.Attributes))
	for k := range record.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.AppendRow(table.Row{k, record.Attributes[k]})
	}
	t.AppendSeparator()

	for i, img := range record.Images {
		label := "Image"
		if i == 0 {
			label = "Image (primary)"
		}
		t.AppendRow(table.Row{label, img})
	}

	t.Render()
}

func renderCategories(w io.Writer, title string, categories []domain.Category) {
	if len(categories) == 0 {
		fmt.Fprintf(w, "%s: no subcategories, this is a leaf\n", title)
		return
	}

	t := newTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"ID", "Name", "Leaf"})
	for _, c := range categories {
		leaf := ""
		if c.Leaf {
			leaf = "yes"
		}
		t.AppendRow(table.Row{c.ID, c.Name, leaf})
	}
	t.Render()
}

func renderPath(w io.Writer, selected []domain.Category) {
	if len(selected) == 0 {
		fmt.Fprintln(w, "No category selected")
		return
	}

	names := make([]string, 0, len(selected))
	for _, c := range selected {
		names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.ID))
	}
	fmt.Fprintln(w, "Category:", strings.Join(names, " > "))
}

func renderResult(w io.Writer, result *domain.PublishResult) {
	t := newTable(w)
	t.SetTitle("Listing")
	t.AppendRow(table.Row{"Status", result.Status})
	if result.ListingID != "" {
		t.AppendRow(table.Row{"Item ID", result.ListingID})
	}
	for _, msg := range result.Messages {
		t.AppendRow(table.Row{"Error", msg})
	}
	t.Render()
}

// splitIDs parses "293,15032, 9355" into its ids
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
