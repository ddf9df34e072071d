package site

import (
	"errors"
	"html/template"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/articles"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/events"
	"github.com/ziadkadry99/caravansite/internal/locator"
	"github.com/ziadkadry99/caravansite/internal/reviews"
)

// homeLimit caps each list on the home page.
const homeLimit = 3

type homeData struct {
	Models   []catalog.Model
	Events   []events.Event
	Articles []articles.Article
	Summary  reviews.Summary
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homeData{Models: catalog.Search(catalog.Filter{}, catalog.SortPriceAsc)}
	if len(data.Models) > homeLimit {
		data.Models = data.Models[:homeLimit]
	}

	var err error
	if s.opts.Events != nil {
		if data.Events, err = s.opts.Events.Upcoming(ctx, homeLimit); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	if s.opts.Articles != nil {
		if data.Articles, err = s.opts.Articles.Published(ctx, "", homeLimit); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	if s.opts.Reviews != nil {
		if data.Summary, err = s.opts.Reviews.Summarize(ctx, ""); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	s.render(w, r, http.StatusOK, "home", s.opts.Name, data)
}

type modelsData struct {
	Models []catalog.Model
	Ranges []string
	Filter catalog.Filter
	Sort   string
}

func (s *Site) handleModels(w http.ResponseWriter, r *http.Request) {
	f := catalog.ParseFilter(r)
	sort := r.URL.Query().Get("sort")
	s.render(w, r, http.StatusOK, "models", "Our caravans", modelsData{
		Models: catalog.Search(f, catalog.SortKey(sort)),
		Ranges: catalog.Ranges(),
		Filter: f,
		Sort:   sort,
	})
}

type modelData struct {
	Model   catalog.Model
	Quote   catalog.Quote
	Reviews []reviews.Review
	Summary reviews.Summary
}

func (s *Site) handleModel(w http.ResponseWriter, r *http.Request) {
	m, ok := catalog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		s.notFound(w, r)
		return
	}
	quote, err := catalog.PriceQuote(m.Slug, nil)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := modelData{Model: m, Quote: quote}
	if s.opts.Reviews != nil {
		if data.Reviews, err = s.opts.Reviews.Approved(r.Context(), m.Slug, 5); err != nil {
			s.serverError(w, r, err)
			return
		}
		if data.Summary, err = s.opts.Reviews.Summarize(r.Context(), m.Slug); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	s.render(w, r, http.StatusOK, "model", m.Name, data)
}

type locatorData struct {
	Kind     string
	Map      template.HTML
	Selected *locator.Region
	Entries  []locator.Entry
	Query    string
	Results  []locator.Entry
}

func (s *Site) handleLocator(d *locator.Directory, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		selected := ""
		if region, ok := d.Region(r.URL.Query().Get("region")); ok {
			selected = region.ID
		}
		svg, err := d.RenderMap(selected, r.URL.Path)
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		data := locatorData{
			Kind:    d.Kind,
			Map:     svg,
			Entries: d.ForRegion(selected),
			Query:   r.URL.Query().Get("q"),
		}
		if region, ok := d.Region(selected); ok {
			data.Selected = &region
		}
		if data.Query != "" {
			data.Results = d.Search(data.Query)
		}
		s.render(w, r, http.StatusOK, "locator", title, data)
	}
}

type blogData struct {
	Articles []articles.Article
	Tag      string
	Tags     []string
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	if s.opts.Articles == nil {
		s.notFound(w, r)
		return
	}
	tag := r.URL.Query().Get("tag")
	list, err := s.opts.Articles.Published(r.Context(), tag, 0)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	counts, err := s.opts.Articles.Tags(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	s.render(w, r, http.StatusOK, "blog", "News & stories", blogData{Articles: list, Tag: tag, Tags: tags})
}

type articleData struct {
	Article articles.Article
	Body    template.HTML
}

func (s *Site) handleArticle(w http.ResponseWriter, r *http.Request) {
	if s.opts.Articles == nil {
		s.notFound(w, r)
		return
	}
	a, err := s.opts.Articles.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, db.ErrNotFound) || (err == nil && a.Status != articles.StatusPublished) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	body, err := s.opts.Renderer.Render(*a)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "article", a.Title, articleData{Article: *a, Body: template.HTML(body)})
}

func (s *Site) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.opts.Events == nil {
		s.notFound(w, r)
		return
	}
	list, err := s.opts.Events.Upcoming(r.Context(), 0)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "events", "Shows & events", list)
}

type eventData struct {
	Event      events.Event
	Open       bool
	PlacesLeft int
	Unlimited  bool
}

func (s *Site) handleEvent(w http.ResponseWriter, r *http.Request) {
	if s.opts.Events == nil {
		s.notFound(w, r)
		return
	}
	e, err := s.opts.Events.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, db.ErrNotFound) || (err == nil && e.Status == events.StatusDraft) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := eventData{Event: *e, Open: e.IsOpen(s.now()), Unlimited: e.Capacity == 0}
	if !data.Unlimited && s.opts.Registrations != nil {
		booked, err := s.opts.Registrations.BookedSeats(r.Context(), e.ID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data.PlacesLeft = max(0, e.Capacity-booked)
		if data.PlacesLeft == 0 {
			data.Open = false
		}
	}
	s.render(w, r, http.StatusOK, "event", e.Title, data)
}

type reviewsData struct {
	Reviews []reviews.Review
	Summary reviews.Summary
}

func (s *Site) handleReviews(w http.ResponseWriter, r *http.Request) {
	if s.opts.Reviews == nil {
		s.notFound(w, r)
		return
	}
	list, err := s.opts.Reviews.Approved(r.Context(), r.URL.Query().Get("model"), 0)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	sum, err := s.opts.Reviews.Summarize(r.Context(), r.URL.Query().Get("model"))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "reviews", "Owner reviews", reviewsData{Reviews: list, Summary: sum})
}
