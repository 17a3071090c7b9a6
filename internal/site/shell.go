package site

import (
	"bytes"
	"html/template"
)

var pageShell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta http-equiv="X-UA-Compatible" content="ie=edge">
<title>{{.Title}}</title>
<link rel="stylesheet" href="../css/github-markdown.css">
<link rel="stylesheet" href="../css/docs.css">
<article class="markdown-body">
{{.Body}}
</article>
<link rel="stylesheet" href="../css/balloon.min.css">
<script src="../js/clipboard.min.js"></script>
<script src="../docs.js"></script>
`))

type shellData struct {
	Title string
	Body  template.HTML
}

// wrapPage embeds a post-processed body into the fixed page header and footer.
func wrapPage(title, body string) (string, error) {
	var buf bytes.Buffer
	if err := pageShell.Execute(&buf, shellData{Title: title, Body: template.HTML(body)}); err != nil { //nolint:gosec // body is produced by the render pipeline
		return "", err
	}
	return buf.String(), nil
}
