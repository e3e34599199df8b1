package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// SheetSection is one sheet's worth of the HTML analysis report.
type SheetSection struct {
	Name      string
	Rows      int
	Summaries []reader.Summary
	Mappings  []core.MappingRecord
}

// AnalysisReport is the data model behind the HTML report.
type AnalysisReport struct {
	File        string
	GeneratedAt time.Time
	Sheets      []SheetSection
}

var htmlReport = template.Must(template.New("analysis").Funcs(template.FuncMap{
	"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
	"num": func(f float64) string { return fmt.Sprintf("%.2f", f) },
}).Parse(`<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8">
<title>Field analysis - {{.File}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; margin-top: .5rem; }
th, td { border: 1px solid #ccc; padding: 4px 10px; font-size: .85rem; text-align: left; }
th { background: #f0f0f0; }
td.n { text-align: right; }
.meta { color: #666; font-size: .85rem; }
</style>
</head>
<body>
<h1>Field analysis report</h1>
<p class="meta">{{.File}} · generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
{{range .Sheets}}
<h2>{{if .Name}}Sheet: {{.Name}}{{else}}Columns{{end}} ({{.Rows}} rows)</h2>
<table>
<tr><th>Column</th><th>Non-null</th><th>Nulls</th><th>Null %</th><th>Unique</th><th>Top values</th><th>Numeric</th></tr>
{{range .Summaries}}
<tr>
<td>{{.Name}}</td>
<td class="n">{{.NonNull}}</td>
<td class="n">{{.Nulls}}</td>
<td class="n">{{pct .NullPct}}</td>
<td class="n">{{.Unique}}</td>
<td>{{range $i, $v := .Top}}{{if $i}}, {{end}}{{$v.Value}} ({{$v.Count}}){{end}}</td>
<td>{{with .Numeric}}min {{num .Min}} / max {{num .Max}} / mean {{num .Mean}}{{end}}</td>
</tr>
{{end}}
</table>
{{if .Mappings}}
<h2>Field mappings</h2>
<table>
<tr><th>Source</th><th>Field name</th><th>Group</th><th>Type</th><th>Role</th><th>Mapped</th></tr>
{{range .Mappings}}
<tr>
<td>{{.CnName}}</td>
<td>{{.FieldName}}</td>
<td>{{.Group}}</td>
<td>{{.DType}}</td>
<td>{{.Role}}</td>
<td>{{if .IsMapped}}yes{{else}}no{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`))

// WriteHTML renders the analysis report.
func WriteHTML(w io.Writer, r AnalysisReport) error {
	return htmlReport.Execute(w, r)
}

// WriteHTMLFile renders the analysis report to a file.
func WriteHTMLFile(path string, r AnalysisReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	if err := WriteHTML(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write html report: %w", err)
	}
	return f.Close()
}
