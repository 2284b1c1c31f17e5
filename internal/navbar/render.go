package navbar

import (
	"bytes"
	"html/template"
)

const linkTemplate = `{{define "link"}}<a id="{{.HTMLID}}_link"{{if .Onclick}} onclick="{{.Onclick}}"{{end}} href="{{.URL}}" target="{{.Target}}">` +
	`{{if .Icon}}<img class="link-icon" aria-hidden="true" src="{{.Icon}}" height="16" width="16">{{end}}` +
	`<span id="{{.HTMLID}}_text">{{.DisplayName}}</span></a>{{end}}`

const navbarTemplate = `{{range .}}{{if .Children}}<div class="link-group-heading">{{.DisplayName}}</div>
<div class="link-group">
<ul>
{{range .Children}}<li>{{template "link" .}}</li>
{{end}}</ul>
</div>
{{else}}<div class="link-group-heading">{{template "link" .}}</div>
{{end}}{{end}}`

var navbarHTML = template.Must(template.New("navbar").Parse(linkTemplate + navbarTemplate))

// linkView carries the onclick handler as trusted script; handlers are
// authored by navbar administrators.
type linkView struct {
	HTMLID      string
	DisplayName string
	URL         string
	Target      string
	Icon        string
	Onclick     template.JS
	Children    []linkView
}

func toView(nodes []*Node) []linkView {
	views := make([]linkView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, linkView{
			HTMLID:      n.HTMLID,
			DisplayName: n.DisplayName,
			URL:         n.URL,
			Target:      n.Target,
			Icon:        n.Icon,
			Onclick:     template.JS(n.Onclick),
			Children:    toView(n.Children),
		})
	}
	return views
}

// Render produces the navigation HTML fragment for an already built tree.
func Render(nodes []*Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := navbarHTML.ExecuteTemplate(&buf, "navbar", toView(nodes)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
