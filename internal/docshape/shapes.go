package docshape

import (
	"strings"
	"time"
)

// Review is the current review shape.
type Review struct {
	ID           string
	CustomerName string
	Location     string
	Model        string
	Rating       int
	Title        string
	Content      string
	Status       string
	Featured     bool
	CreatedAt    time.Time
}

// NormalizeReview maps either review shape onto Review. The legacy shape
// is {name, text, stars, date}. Ratings are clamped to 1..5. The legacy
// collection only held reviews shown on the site, so a missing status
// becomes "approved".
func NormalizeReview(id string, d Document) Review {
	r := Review{
		ID:           firstNonEmpty(d.String("id"), id),
		CustomerName: d.String("customerName", "name"),
		Location:     d.String("location", "suburb"),
		Model:        d.String("model", "caravanModel"),
		Title:        d.String("title"),
		Content:      d.String("content", "text"),
		Status:       strings.ToLower(d.String("status")),
		Featured:     d.Bool("featured"),
		CreatedAt:    Timestamp(firstPresent(d, "createdAt", "date", "created_at")),
	}
	rating, _ := d.Int("rating", "stars")
	r.Rating = ClampRating(rating)
	if r.Status == "" {
		r.Status = "approved"
	}
	return r
}

// ClampRating forces a rating into 1..5.
func ClampRating(n int) int {
	return max(1, min(5, n))
}

// Article is the current article shape.
type Article struct {
	ID          string
	Slug        string
	Title       string
	Excerpt     string
	Body        string
	BodyFormat  string
	CoverImage  string
	Author      string
	Tags        []string
	Status      string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// NormalizeArticle maps either article shape onto Article. The legacy
// shape is {content (HTML), date, image}; its body keeps the "html" format.
// A missing slug is derived from the title.
func NormalizeArticle(id string, d Document) Article {
	a := Article{
		ID:         firstNonEmpty(d.String("id"), id),
		Slug:       d.String("slug"),
		Title:      d.String("title"),
		Excerpt:    d.String("excerpt", "summary"),
		CoverImage: d.String("coverImage", "image"),
		Author:     d.String("author"),
		Tags:       d.Strings("tags"),
		Status:     strings.ToLower(d.String("status")),
	}

	if body := d.String("body"); body != "" {
		a.Body, a.BodyFormat = body, "markdown"
	} else {
		a.Body, a.BodyFormat = d.String("content"), "html"
	}

	a.PublishedAt = Timestamp(firstPresent(d, "publishedAt", "date"))
	a.CreatedAt = Timestamp(firstPresent(d, "createdAt", "publishedAt", "date"))
	if a.Slug == "" {
		a.Slug = SlugFor(a.Title, a.ID)
	}
	if a.Status == "" {
		if a.PublishedAt.IsZero() {
			a.Status = "draft"
		} else {
			a.Status = "published"
		}
	}
	return a
}

// Event is the current event shape.
type Event struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
	CoverImage  string
	Status      string
	CreatedAt   time.Time
}

// NormalizeEvent maps an event document onto Event. Single-day legacy
// events carry only "date"; they end when they start.
func NormalizeEvent(id string, d Document) Event {
	e := Event{
		ID:          firstNonEmpty(d.String("id"), id),
		Slug:        d.String("slug"),
		Title:       d.String("title", "name"),
		Description: d.String("description", "content"),
		Location:    d.String("location", "venue"),
		CoverImage:  d.String("coverImage", "image"),
		Status:      strings.ToLower(d.String("status")),
		StartsAt:    Timestamp(firstPresent(d, "startsAt", "startDate", "date")),
		EndsAt:      Timestamp(firstPresent(d, "endsAt", "endDate")),
		CreatedAt:   Timestamp(firstPresent(d, "createdAt")),
	}
	e.Capacity, _ = d.Int("capacity")
	if e.EndsAt.IsZero() || e.EndsAt.Before(e.StartsAt) {
		e.EndsAt = e.StartsAt
	}
	if e.Slug == "" {
		e.Slug = SlugFor(e.Title, e.ID)
	}
	if e.Status == "" {
		e.Status = "published"
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.StartsAt
	}
	return e
}

func firstPresent(d Document, keys ...string) any {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
