package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"fileref/internal/fileinfo"
	"fileref/internal/uti"
)

type infoRow struct {
	Ref  fileinfo.Reference
	Info fileinfo.FileInfo
	OK   bool
}

const unavailable = "-"

func renderInfo(w io.Writer, rows []infoRow, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Reference", "Kind", "Type", "Size", "Modified", "Hidden"})
	for _, r := range rows {
		if !r.OK {
			t.AppendRow(table.Row{r.Ref.String(), unavailable, unavailable, unavailable, unavailable, unavailable})
			continue
		}
		size := unavailable
		if r.Info.HasSize {
			size = fileinfo.FormatFileSize(r.Info.Size)
		}
		t.AppendRow(table.Row{
			r.Ref.String(),
			r.Info.FileType.String(),
			r.Info.Type,
			size,
			r.Info.Modified.Format(time.DateTime),
			formatBool(r.Info.IsHidden),
		})
	}

	switch strings.ToLower(format) {
	case "table", "":
		t.SetStyle(table.StyleLight)
		t.Render()
	case "csv":
		t.RenderCSV()
	case "markdown", "md":
		t.RenderMarkdown()
	default:
		return checkFormat(format)
	}
	return nil
}

func checkFormat(format string) error {
	switch strings.ToLower(format) {
	case "table", "", "csv", "markdown", "md":
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTypes(w io.Writer, reg *uti.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Identifier", "Conforms to", "Extensions", "Description"})
	for _, id := range reg.Identifiers() {
		d, _ := reg.Lookup(id)
		t.AppendRow(table.Row{
			d.Identifier,
			strings.Join(d.ConformsTo, ", "),
			strings.Join(d.Extensions, ", "),
			d.Description,
		})
	}
	t.Render()
}
