package content

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/storefront/platform/internal/domain/content"
)

var documentTemplate = template.Must(template.New("content").Funcs(template.FuncMap{
	"paragraphs": paragraphs,
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 2cm; color: #222; }
h1 { font-size: 24pt; margin-bottom: 4pt; }
.meta { color: #777; font-size: 9pt; margin-bottom: 18pt; }
.tag { display: inline-block; border: 1px solid #ccc; border-radius: 3px; padding: 0 4px; margin-right: 4px; }
p { line-height: 1.5; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.Type}}{{with formatDate .PublishedAt}} &middot; {{.}}{{end}}{{range .Tags}} <span class="tag">{{.}}</span>{{end}}</div>
{{range paragraphs .Body}}<p>{{.}}</p>
{{end}}</body>
</html>`))

// renderDocument produces the printable HTML page of a content item
func renderDocument(item *content.Item) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, item); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
