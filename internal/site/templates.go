package site

// layoutTemplate wraps every page. Each page defines "content".
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if ne .Title .SiteName}}{{.Title}} | {{end}}{{.SiteName}}</title>
</head>
<body>
  <header>
    <a href="/">{{.SiteName}}</a>
    <nav>
      <a href="/models">Caravans</a>
      <a href="/dealers">Dealers</a>
      <a href="/service-agents">Service</a>
      <a href="/blog">News</a>
      <a href="/events">Events</a>
      <a href="/reviews">Reviews</a>
    </nav>
  </header>
  <main>
    <h1>{{.Title}}</h1>
    {{template "content" .Data}}
  </main>
</body>
</html>
`

var pageTemplates = map[string]string{
	"home": `
<section id="models">
  {{range .Models}}<article><a href="/models/{{.Slug}}">{{.Name}}</a> from {{dollars .BasePrice}}</article>{{end}}
</section>
{{if .Summary.Count}}<p class="rating">{{printf "%.1f" .Summary.Average}} from {{.Summary.Count}} owner reviews</p>{{end}}
{{if .Events}}<section id="events">
  {{range .Events}}<article><a href="/events/{{.Slug}}">{{.Title}}</a> {{date .StartsAt}}</article>{{end}}
</section>{{end}}
{{if .Articles}}<section id="news">
  {{range .Articles}}<article><a href="/blog/{{.Slug}}">{{.Title}}</a><p>{{.Excerpt}}</p></article>{{end}}
</section>{{end}}
`,

	"models": `
<form method="get" action="/models">
  <select name="range"><option value="">All ranges</option>{{range .Ranges}}<option value="{{.}}"{{if eq . $.Filter.Range}} selected{{end}}>{{.}}</option>{{end}}</select>
  <input type="number" name="berths" min="1" value="{{if .Filter.MinBerths}}{{.Filter.MinBerths}}{{end}}" placeholder="Berths">
  <input type="number" name="max_price" value="{{if .Filter.MaxPrice}}{{.Filter.MaxPrice}}{{end}}" placeholder="Max price">
  <input type="search" name="q" value="{{.Filter.Query}}" placeholder="Search">
  <select name="sort">
    <option value="">Featured</option>
    <option value="price"{{if eq .Sort "price"}} selected{{end}}>Price: low to high</option>
    <option value="-price"{{if eq .Sort "-price"}} selected{{end}}>Price: high to low</option>
    <option value="length"{{if eq .Sort "length"}} selected{{end}}>Length</option>
    <option value="berths"{{if eq .Sort "berths"}} selected{{end}}>Berths</option>
    <option value="name"{{if eq .Sort "name"}} selected{{end}}>Name</option>
  </select>
  <button type="submit">Filter</button>
</form>
{{range .Models}}
<article class="model">
  <h2><a href="/models/{{.Slug}}">{{.Name}}</a></h2>
  <p>{{.Range}} · {{.Berths}} berths · {{.LengthM}} m · from {{dollars .BasePrice}}</p>
  <p>{{.Summary}}</p>
</article>
{{else}}
<p>No caravans match those filters.</p>
{{end}}
`,

	"model": `
<p>{{.Model.Summary}}</p>
<dl>
  <dt>Range</dt><dd>{{.Model.Range}}</dd>
  <dt>Berths</dt><dd>{{.Model.Berths}}</dd>
  <dt>Length</dt><dd>{{.Model.LengthM}} m</dd>
  <dt>Tare</dt><dd>{{.Model.TareKg}} kg</dd>
  <dt>ATM</dt><dd>{{.Model.ATMKg}} kg</dd>
  <dt>Base price</dt><dd>{{dollars .Model.BasePrice}}</dd>
  <dt>As pictured</dt><dd>{{dollars .Quote.Total}}</dd>
</dl>
<ul class="features">{{range .Model.Features}}<li>{{.}}</li>{{end}}</ul>
<table class="options">
  {{range .Model.Options}}<tr><td>{{.Label}}</td><td>{{dollars .Price}}</td><td>{{if .Default}}standard{{end}}</td></tr>{{end}}
</table>
{{if .Model.BrochureURL}}<a href="{{.Model.BrochureURL}}">Download brochure</a>{{end}}
{{if .Summary.Count}}
<section id="reviews">
  <p>{{printf "%.1f" .Summary.Average}} from {{.Summary.Count}} reviews</p>
  {{range .Reviews}}<blockquote><p>{{stars .Rating}} {{.Title}}</p><p>{{.Content}}</p><cite>{{.CustomerName}}{{if .Location}}, {{.Location}}{{end}}</cite></blockquote>{{end}}
</section>
{{end}}
`,

	"locator": `
<form method="get">
  <input type="search" name="q" value="{{.Query}}" placeholder="Name, suburb or postcode">
  <button type="submit">Search</button>
</form>
{{if .Query}}
<section id="results">
  {{range .Results}}{{template "entry" .}}{{else}}<p>No matches for "{{.Query}}".</p>{{end}}
</section>
{{end}}
{{.Map}}
{{if .Selected}}
<h2>{{.Selected.Label}}</h2>
<section id="entries">
  {{range .Entries}}{{template "entry" .}}{{else}}<p>None in this region yet.</p>{{end}}
</section>
{{else}}
<p>Select a region on the map.</p>
{{end}}
{{define "entry"}}<article class="entry"><h3>{{.Name}}</h3><p>{{.Address}}, {{.Suburb}} {{.Postcode}}</p><p><a href="tel:{{.Phone}}">{{.Phone}}</a>{{if .Email}} · <a href="mailto:{{.Email}}">{{.Email}}</a>{{end}}</p>{{if .Services}}<p>{{join .Services ", "}}</p>{{end}}</article>{{end}}
`,

	"blog": `
{{if .Tags}}<nav class="tags"><a href="/blog">All</a>{{range .Tags}} <a href="/blog?tag={{.}}"{{if eq . $.Tag}} aria-current="true"{{end}}>{{.}}</a>{{end}}</nav>{{end}}
{{range .Articles}}
<article>
  <h2><a href="/blog/{{.Slug}}">{{.Title}}</a></h2>
  {{with .PublishedAt}}<time>{{date .}}</time>{{end}}
  <p>{{.Excerpt}}</p>
</article>
{{else}}
<p>No posts yet.</p>
{{end}}
`,

	"article": `
{{with .Article.PublishedAt}}<time>{{date .}}</time>{{end}}
{{if .Article.Author}}<p class="author">{{.Article.Author}}</p>{{end}}
{{if .Article.CoverImage}}<img src="{{.Article.CoverImage}}" alt="">{{end}}
<div class="body">{{.Body}}</div>
`,

	"events": `
{{range .}}
<article>
  <h2><a href="/events/{{.Slug}}">{{.Title}}</a></h2>
  <p>{{date .StartsAt}}{{if .Location}} · {{.Location}}{{end}}</p>
</article>
{{else}}
<p>No upcoming events. Check back soon.</p>
{{end}}
`,

	"event": `
<p>{{date .Event.StartsAt}}{{if ne (date .Event.StartsAt) (date .Event.EndsAt)}} to {{date .Event.EndsAt}}{{end}}{{if .Event.Location}} · {{.Event.Location}}{{end}}</p>
<p>{{.Event.Description}}</p>
{{if .Open}}
  {{if not .Unlimited}}<p class="places">{{.PlacesLeft}} places left</p>{{end}}
  <form id="register" data-event="{{.Event.ID}}" method="post" action="/api/eventRegistrations"></form>
{{else}}
  <p>Registrations are closed.</p>
{{end}}
`,

	"reviews": `
{{if .Summary.Count}}
<p>{{printf "%.1f" .Summary.Average}} from {{.Summary.Count}} reviews</p>
<ul class="histogram">{{range $stars, $n := .Summary.Histogram}}<li>{{$stars}} stars: {{$n}}</li>{{end}}</ul>
{{end}}
{{range .Reviews}}
<blockquote{{if .Featured}} class="featured"{{end}}>
  <p>{{stars .Rating}} {{.Title}}</p>
  <p>{{.Content}}</p>
  <cite>{{.CustomerName}}{{if .Location}}, {{.Location}}{{end}}{{if .Model}} · {{.Model}}{{end}}</cite>
</blockquote>
{{else}}
<p>No reviews yet.</p>
{{end}}
`,

	"notfound": `<p>Sorry, we couldn't find that page. <a href="/">Back to the home page</a>.</p>`,
}
