// Package site renders the public marketing pages. Markup is deliberately
// plain; the pages carry content and links, not styling.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/articles"
	"github.com/ziadkadry99/caravansite/internal/events"
	"github.com/ziadkadry99/caravansite/internal/locator"
	"github.com/ziadkadry99/caravansite/internal/registrations"
	"github.com/ziadkadry99/caravansite/internal/reviews"
)

// Options wires the stores the pages read from.
type Options struct {
	Name          string
	Articles      *articles.Store
	Renderer      *articles.Renderer
	Events        *events.Store
	Registrations *registrations.Store
	Reviews       *reviews.Store
	Dealers       *locator.Directory
	ServiceAgents *locator.Directory
	Log           *zap.Logger
}

// Site serves the public HTML pages.
type Site struct {
	opts  Options
	pages map[string]*template.Template
	now   func() time.Time
}

// New parses the page templates.
func New(opts Options) (*Site, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Renderer == nil {
		opts.Renderer = articles.NewRenderer()
	}
	if opts.Dealers == nil {
		opts.Dealers = locator.Dealers
	}
	if opts.ServiceAgents == nil {
		opts.ServiceAgents = locator.ServiceAgents
	}

	s := &Site{opts: opts, pages: make(map[string]*template.Template, len(pageTemplates)), now: time.Now}
	for name, body := range pageTemplates {
		t, err := template.New("layout").Funcs(funcs).Parse(layoutTemplate)
		if err != nil {
			return nil, fmt.Errorf("parsing layout: %w", err)
		}
		if _, err := t.New("content").Parse(body); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// RegisterRoutes mounts the public pages.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/models", s.handleModels)
	r.Get("/models/{slug}", s.handleModel)
	r.Get("/dealers", s.handleLocator(s.opts.Dealers, "Find a dealer"))
	r.Get("/service-agents", s.handleLocator(s.opts.ServiceAgents, "Find a service agent"))
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/{slug}", s.handleArticle)
	r.Get("/events", s.handleEvents)
	r.Get("/events/{slug}", s.handleEvent)
	r.Get("/reviews", s.handleReviews)
}

// page is the data every template receives.
type page struct {
	SiteName string
	Title    string
	Path     string
	Data     any
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := s.pages[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("no template %q", name))
		return
	}
	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", page{
		SiteName: s.opts.Name,
		Title:    title,
		Path:     r.URL.Path,
		Data:     data,
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", "Page not found", nil)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Log.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}

var funcs = template.FuncMap{
	"dollars": formatDollars,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 January 2006")
	},
	"stars": func(n int) string {
		return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
	},
	"join": strings.Join,
}

// formatDollars renders whole dollars with thousands separators.
func formatDollars(n int) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
