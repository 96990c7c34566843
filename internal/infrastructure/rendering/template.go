// Package rendering turns delivery note snapshots into printable PDF
// documents using a headless Chrome instance.
package rendering

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/worklog/backend/internal/application/worklog"
)

// noteTemplate is the HTML document for a rendered delivery note. The
// signature image is embedded as a base64 data URL so the document is
// self-contained.
const noteTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Delivery Note {{.NoteID}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; margin: 40px; }
  h1 { font-size: 18px; border-bottom: 2px solid #222; padding-bottom: 8px; }
  h2 { font-size: 13px; margin-top: 24px; text-transform: uppercase; color: #555; }
  table { width: 100%; border-collapse: collapse; margin-top: 8px; }
  td, th { padding: 4px 8px; text-align: left; vertical-align: top; }
  .meta td:first-child { width: 160px; font-weight: bold; }
  .entries th { border-bottom: 1px solid #999; }
  .entries td { border-bottom: 1px solid #e0e0e0; }
  .signature { margin-top: 48px; }
  .signature img { max-width: 280px; max-height: 120px; border-bottom: 1px solid #222; }
  .pending { color: #999; font-style: italic; }
</style>
</head>
<body>
<h1>Delivery Note</h1>
<table class="meta">
  <tr><td>Reference</td><td>{{.NoteID}}</td></tr>
  <tr><td>Work date</td><td>{{.WorkDate.Format "2006-01-02"}}</td></tr>
  <tr><td>Format</td><td>{{.Format}}</td></tr>
</table>

<h2>Issued by</h2>
<table class="meta">
  <tr><td>Name</td><td>{{.UserName}}</td></tr>
  <tr><td>Email</td><td>{{.UserEmail}}</td></tr>
  {{if .CompanyName}}<tr><td>Company</td><td>{{.CompanyName}}</td></tr>{{end}}
</table>

<h2>Client</h2>
<table class="meta">
  <tr><td>Name</td><td>{{.ClientName}}</td></tr>
  {{if .ClientTaxID}}<tr><td>Tax ID</td><td>{{.ClientTaxID}}</td></tr>{{end}}
  {{if .ClientAddress}}<tr><td>Address</td><td>{{.ClientAddress}}</td></tr>{{end}}
</table>

<h2>Project</h2>
<table class="meta">
  <tr><td>Name</td><td>{{.ProjectName}}</td></tr>
  <tr><td>Code</td><td>{{.ProjectCode}}</td></tr>
</table>

{{if .Hours}}
<h2>Hours</h2>
<table class="entries">
  <tr><th>#</th><th>Entry</th></tr>
  {{range $i, $entry := .Hours}}<tr><td>{{inc $i}}</td><td>{{$entry}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Materials}}
<h2>Materials</h2>
<table class="entries">
  <tr><th>#</th><th>Entry</th></tr>
  {{range $i, $entry := .Materials}}<tr><td>{{inc $i}}</td><td>{{$entry}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Description}}
<h2>Description</h2>
<p>{{.Description}}</p>
{{end}}

<div class="signature">
<h2>Signature</h2>
{{if .SignatureDataURL}}
<img src="{{.SignatureDataURL}}" alt="signature">
{{else}}
<p class="pending">Pending signature</p>
{{end}}
</div>
</body>
</html>`

var noteTmpl = template.Must(
	template.New("deliverynote").
		Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).
		Parse(noteTemplate),
)

// noteDocument is the data fed to the note template
type noteDocument struct {
	*worklog.NoteSnapshot
	SignatureDataURL template.URL
}

// BuildNoteHTML renders the HTML document for a note snapshot
func BuildNoteHTML(snapshot *worklog.NoteSnapshot) (string, error) {
	doc := noteDocument{NoteSnapshot: snapshot}
	if snapshot.Signed() {
		doc.SignatureDataURL = template.URL(
			"data:image/png;base64," + base64.StdEncoding.EncodeToString(snapshot.Signature))
	}

	var buf bytes.Buffer
	if err := noteTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render note template: %w", err)
	}
	return buf.String(), nil
}
