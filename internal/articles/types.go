package articles

import "time"

// Collection is the external name of the article collection.
const Collection = "blogs"

// Status controls whether an article is shown on the site.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

// Body formats. Imported legacy posts keep their HTML bodies.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Article is a blog post.
type Article struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	BodyFormat  string     `json:"body_format"`
	CoverImage  string     `json:"cover_image"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Rendered is an article with its body converted to HTML.
type Rendered struct {
	Article
	BodyHTML string `json:"body_html"`
}

// Input is the admin create/update payload.
type Input struct {
	Slug        string     `json:"slug" validate:"omitempty,slug,max=120"`
	Title       string     `json:"title" validate:"required,max=200"`
	Excerpt     string     `json:"excerpt" validate:"max=500"`
	Body        string     `json:"body" validate:"max=200000"`
	BodyFormat  string     `json:"body_format" validate:"omitempty,oneof=markdown html"`
	CoverImage  string     `json:"cover_image" validate:"omitempty,url"`
	Author      string     `json:"author" validate:"max=100"`
	Tags        []string   `json:"tags" validate:"max=20,dive,required,max=40"`
	Status      Status     `json:"status" validate:"omitempty,oneof=draft published archived"`
	PublishedAt *time.Time `json:"published_at"`
}
