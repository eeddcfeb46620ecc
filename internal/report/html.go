package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gnis-match/internal/engine"
)

const htmlReport = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Place Matching Report</title>
<style>
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
th { background: #f0f0f0; }
td.num { text-align: right; }
.unmatched { color: #b00; }
.multiple { color: #a60; }
.footer { color: #888; font-size: 0.85em; margin-top: 2em; }
</style>
</head>
<body>
<h1>Place Matching Report</h1>

<h2>Summary</h2>
<table>
<tr><th>Total records</th><td class="num">{{.Summary.TotalRecords}}</td></tr>
<tr><th>Single match</th><td class="num">{{.Summary.SingleMatch}}</td></tr>
<tr><th>Multiple match</th><td class="num">{{.Summary.MultipleMatch}}</td></tr>
<tr><th>Unmatched</th><td class="num">{{.Summary.Unmatched}}</td></tr>
<tr><th>Match rate</th><td class="num">{{printf "%.1f%%" .MatchRatePct}}</td></tr>
<tr><th>Mean confidence</th><td class="num">{{printf "%.1f" .Summary.MeanConfidence}}</td></tr>
<tr><th>Median confidence</th><td class="num">{{printf "%.1f" .Summary.MedianConfidence}}</td></tr>
</table>

<h2>Matches by strategy</h2>
<table>
<tr><th>Strategy</th><th>Records</th></tr>
{{range .Strategies}}<tr><td>{{.Name}}</td><td class="num">{{.Count}}</td></tr>
{{end}}</table>

<h2>Review queue</h2>
<p>Records that need attention: multiple candidates, or no match at all.</p>
<table>
<tr><th>ID</th><th>Place name</th><th>County</th><th>Disposition</th><th>Candidates</th><th>Top candidate</th><th>Confidence</th></tr>
{{range .Review}}<tr>
<td class="num">{{.Record.ID}}</td>
<td>{{.Record.Name}}</td>
<td>{{.Record.County}}</td>
<td class="{{.Disposition}}">{{.Disposition}}</td>
<td class="num">{{len .Candidates}}</td>
{{with .Best}}<td>{{.EntryName}} ({{.EntryCounty}})</td><td class="num">{{printf "%.1f" .Confidence}}</td>{{else}}<td>&mdash;</td><td class="num">&mdash;</td>{{end}}
</tr>
{{end}}</table>

<p class="footer">Generated {{.GeneratedAt}}</p>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReport))

type strategyCount struct {
	Name  string
	Count int
}

type htmlData struct {
	Summary      engine.Summary
	MatchRatePct float64
	Strategies   []strategyCount
	Review       []engine.Result
	GeneratedAt  string
}

// WriteHTML renders a self-contained summary page: run statistics,
// strategy breakdown, and the review queue of records that did not
// resolve to a single candidate.
func WriteHTML(w io.Writer, results []engine.Result, summary engine.Summary) error {
	data := htmlData{
		Summary:      summary,
		MatchRatePct: summary.MatchRate() * 100,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
	}

	for name, count := range summary.ByStrategy {
		data.Strategies = append(data.Strategies, strategyCount{Name: name, Count: count})
	}
	sort.Slice(data.Strategies, func(i, j int) bool {
		if data.Strategies[i].Count != data.Strategies[j].Count {
			return data.Strategies[i].Count > data.Strategies[j].Count
		}
		return data.Strategies[i].Name < data.Strategies[j].Name
	})

	for i := range results {
		if results[i].Disposition != engine.SingleMatch {
			data.Review = append(data.Review, results[i])
		}
	}

	return htmlTemplate.Execute(w, data)
}

// ExportHTML writes the summary page to path.
func ExportHTML(path string, results []engine.Result, summary engine.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return WriteHTML(f, results, summary)
}
