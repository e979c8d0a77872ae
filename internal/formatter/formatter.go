// package formatter renders catalogue records as tables (go-pretty), CSV, Markdown or JSON
package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// contentWidth bounds the content column in tabular output.
const contentWidth = 40

// ParseFormat maps a flag or config value to a [Format].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatCSV, FormatMarkdown, FormatJSON:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Table is a header plus rows, independent of the output encoding.
type Table struct {
	Header table.Row
	Rows   []table.Row
}

// Render writes t to w in the given tabular format. JSON is not tabular; use [WriteJSON].
func (t Table) Render(w io.Writer, format Format) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(t.Header)
	tw.AppendRows(t.Rows)

	var out string
	switch format {
	case FormatCSV:
		out = tw.RenderCSV()
	case FormatMarkdown:
		out = tw.RenderMarkdown()
	case FormatTable, "":
		out = tw.Render()
	default:
		return fmt.Errorf("%w: %q is not a tabular format", shared.ErrInvalidArgument, format)
	}

	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteJSON encodes data to w, indented when pretty is set.
func WriteJSON(w io.Writer, data any, pretty bool) error {
	var (
		output []byte
		err    error
	)
	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := w.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func AuthorsTable(authors []*models.Author) Table {
	t := Table{Header: table.Row{"ID", "Name"}}
	for _, a := range authors {
		t.Rows = append(t.Rows, table.Row{a.ID(), a.Name()})
	}
	return t
}

func MagazinesTable(magazines []*models.Magazine) Table {
	t := Table{Header: table.Row{"ID", "Name", "Category"}}
	for _, m := range magazines {
		t.Rows = append(t.Rows, table.Row{m.ID(), m.Name(), m.Category()})
	}
	return t
}

// ArticlesTable shortens content to keep rows on one line.
func ArticlesTable(articles []*models.Article) Table {
	t := Table{Header: table.Row{"ID", "Title", "Content", "Author ID", "Magazine ID"}}
	for _, a := range articles {
		t.Rows = append(t.Rows, table.Row{a.ID(), a.Title(), shared.Truncate(a.Content(), contentWidth), a.AuthorID(), a.MagazineID()})
	}
	return t
}

func ContributionsTable(contributions []models.Contribution) Table {
	t := Table{Header: table.Row{"Author ID", "Name", "Articles"}}
	for _, c := range contributions {
		t.Rows = append(t.Rows, table.Row{c.Author.ID(), c.Author.Name(), c.ArticleCount})
	}
	return t
}

func TitlesTable(titles []string) Table {
	t := Table{Header: table.Row{"#", "Title"}}
	for i, title := range titles {
		t.Rows = append(t.Rows, table.Row{i + 1, title})
	}
	return t
}
