package locator

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

var mapTmpl = template.Must(template.New("map").Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 360" class="locator-map" role="img" aria-label="{{.Kind}} map">
{{- range .Regions}}
<a href="{{.Href}}" aria-label="{{.Label}}"{{if .Selected}} aria-current="true"{{end}}>
<path id="region-{{.ID}}" d="{{.Path}}" class="region{{if .Selected}} selected{{end}}{{if not .Count}} empty{{end}}"/>
<text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="middle">{{.ID}}</text>
</a>
{{- end}}
</svg>`))

type regionView struct {
	Region
	Href     string
	Selected bool
	Count    int
}

// RenderMap draws the region map as SVG. Each region links to the selection
// that clicking it would produce, relative to basePath.
func (d *Directory) RenderMap(selected, basePath string) (template.HTML, error) {
	counts := d.Counts()
	views := make([]regionView, 0, len(d.regions))
	for _, r := range d.regions {
		views = append(views, regionView{
			Region:   r,
			Href:     d.Link(basePath, d.Toggle(selected, r.ID)),
			Selected: r.ID == selected,
			Count:    counts[r.ID],
		})
	}

	var buf bytes.Buffer
	err := mapTmpl.Execute(&buf, struct {
		Kind    string
		Regions []regionView
	}{d.Kind, views})
	if err != nil {
		return "", fmt.Errorf("rendering %s map: %w", d.Kind, err)
	}
	return template.HTML(buf.String()), nil
}

// Link returns the URL of basePath with the given selection.
func (d *Directory) Link(basePath, selection string) string {
	if selection == "" {
		return basePath
	}
	return basePath + "?region=" + url.QueryEscape(selection)
}
