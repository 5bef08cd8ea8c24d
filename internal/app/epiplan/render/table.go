package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"epiplan/internal/app/epiplan/episode"
)

// TableColumns are the fixed spreadsheet columns
var TableColumns = [8]string{"Date", "Title", "News 1", "News 2", "News 3", "Tech Talk", "Tutorial", "Community"}

// EmptyTable is the placeholder row text for an empty repository
const EmptyTable = "No episodes to display. Create your first episode in the planner tab."

const (
	noValue      = "-"
	notesPreview = 50
)

// Cell is a spreadsheet value, hyperlinked when Link is set
type Cell struct {
	Text string
	Link string
}

// TableRow is one episode in the spreadsheet
type TableRow struct {
	Date      string
	Title     string
	News      [episode.NewsSlots]Cell
	TechTalk  string
	Tutorial  string
	Community string
}

// TableView is rendered spreadsheet, Placeholder is set for no rows
type TableView struct {
	Rows        []TableRow
	Placeholder string
}

// Table renders already sorted episodes as spreadsheet rows
func Table(eps []episode.Episode) TableView {
	if len(eps) == 0 {
		return TableView{Placeholder: EmptyTable}
	}

	res := TableView{Rows: make([]TableRow, 0, len(eps))}
	for _, ep := range eps {
		row := TableRow{
			Date:      episode.ShortDate(ep.Date),
			Title:     ep.Title,
			TechTalk:  orDash(ep.TechTalk.Topic),
			Tutorial:  orDash(ep.Tutorial.Topic),
			Community: notesCell(ep.CommunityNotes.Notes),
		}
		for i, n := range ep.NewsStories {
			row.News[i] = newsCell(n)
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// Cells returns row values in column order, links dropped
func (r TableRow) Cells() [8]string {
	return [8]string{r.Date, r.Title, r.News[0].Text, r.News[1].Text, r.News[2].Text, r.TechTalk, r.Tutorial, r.Community}
}

func newsCell(n episode.NewsSegment) Cell {
	if n.Title == "" {
		return Cell{Text: noValue}
	}
	return Cell{Text: n.Title, Link: n.Link}
}

func notesCell(notes string) string {
	if notes == "" {
		return noValue
	}
	runes := []rune(notes)
	if len(runes) > notesPreview {
		runes = runes[:notesPreview]
	}
	return string(runes) + "..."
}

func orDash(s string) string {
	if s == "" {
		return noValue
	}
	return s
}

// Text renders spreadsheet as a terminal table
func (v TableView) Text() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(TableColumns))
	for i, c := range TableColumns {
		header[i] = c
	}
	tw.AppendHeader(header)

	if v.Placeholder != "" {
		row := make(table.Row, len(TableColumns))
		for i := range row {
			row[i] = v.Placeholder
		}
		tw.AppendRow(row, table.RowConfig{AutoMerge: true})
		return tw.Render()
	}

	for _, r := range v.Rows {
		cells := r.Cells()
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		for i, n := range r.News {
			if n.Link != "" {
				row[2+i] = fmt.Sprintf("%s <%s>", n.Text, n.Link)
			}
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 3, WidthMax: 30},
		{Number: 4, WidthMax: 30},
		{Number: 5, WidthMax: 30},
		{Number: 8, WidthMax: 30, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

var tableTmpl = template.Must(template.New("table").Parse(`
{{- define "news" -}}
{{- if .Link }}<div class="text-small"><a href="{{ .Link }}" target="_blank">{{ .Text }}</a></div>
{{- else if eq .Text "-" }}-
{{- else }}<div class="text-small">{{ .Text }}</div>{{ end -}}
{{- end -}}

{{- define "tbody" -}}
{{- if .Placeholder }}
<tr>
    <td colspan="8" class="text-center text-muted">{{ .Placeholder }}</td>
</tr>
{{- else }}{{ range .Rows }}
<tr>
    <td>{{ .Date }}</td>
    <td><strong>{{ .Title }}</strong></td>
    {{- range .News }}
    <td>{{ template "news" . }}</td>
    {{- end }}
    <td>{{ .TechTalk }}</td>
    <td>{{ .Tutorial }}</td>
    <td>{{ .Community }}</td>
</tr>
{{- end }}{{ end }}
{{ end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{ .Title }}</title></head>
<body>
<table id="spreadsheet-table">
<thead>
<tr>{{ range .Columns }}<th>{{ . }}</th>{{ end }}</tr>
</thead>
<tbody>
{{- template "tbody" .View }}</tbody>
</table>
</body>
</html>
{{ end -}}
`))

// HTML renders spreadsheet rows as a <tbody> fragment
func (v TableView) HTML() (string, error) {
	var sb strings.Builder
	if err := tableTmpl.ExecuteTemplate(&sb, "tbody", v); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return sb.String(), nil
}

// Page renders spreadsheet as a standalone html document
func (v TableView) Page(title string) (string, error) {
	var sb strings.Builder
	data := struct {
		Title   string
		Columns [8]string
		View    TableView
	}{Title: title, Columns: TableColumns, View: v}
	if err := tableTmpl.ExecuteTemplate(&sb, "page", data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return sb.String(), nil
}
