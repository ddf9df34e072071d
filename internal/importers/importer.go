package importers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/articles"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/brochures"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/docshape"
	"github.com/ziadkadry99/caravansite/internal/events"
	"github.com/ziadkadry99/caravansite/internal/progress"
	"github.com/ziadkadry99/caravansite/internal/quotes"
	"github.com/ziadkadry99/caravansite/internal/registrations"
	"github.com/ziadkadry99/caravansite/internal/reviews"
	"github.com/ziadkadry99/caravansite/internal/warranty"
)

// errExists marks a record whose id is already stored.
var errExists = errors.New("already exists")

// Importer loads exported documents into the collection stores, normalising
// legacy shapes on the way in. Records whose id already exists are skipped,
// so an import can be re-run.
type Importer struct {
	quotes        *quotes.Store
	brochures     *brochures.Store
	warranty      *warranty.Store
	registrations *registrations.Store
	reviews       *reviews.Store
	articles      *articles.Store
	events        *events.Store

	rec      *admin.Recorder
	reporter progress.Reporter
	log      *zap.Logger
}

// New creates an Importer writing to database.
func New(database *db.DB, rec *admin.Recorder, reporter progress.Reporter, log *zap.Logger) *Importer {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		quotes:        quotes.NewStore(database),
		brochures:     brochures.NewStore(database),
		warranty:      warranty.NewStore(database),
		registrations: registrations.NewStore(database),
		reviews:       reviews.NewStore(database),
		articles:      articles.NewStore(database),
		events:        events.NewStore(database),
		rec:           rec,
		reporter:      reporter,
		log:           log,
	}
}

// ImportSources reads and imports every source in order.
func (im *Importer) ImportSources(ctx context.Context, sources []Source) ([]Result, error) {
	SortSources(sources)
	im.reporter.Start(len(sources))
	defer im.reporter.Finish()

	results := make([]Result, 0, len(sources))
	for i, src := range sources {
		im.reporter.Update(i+1, filepath.Base(src.Path))
		records, err := ReadFile(src.Path)
		if err != nil {
			results = append(results, Result{Source: src, Errors: []string{err.Error()}})
			continue
		}
		res, err := im.Import(ctx, src, records)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Import writes records into src.Collection. Per-record problems are
// collected in the result; only context cancellation aborts the run.
func (im *Importer) Import(ctx context.Context, src Source, records []Record) (Result, error) {
	res := Result{Source: src, Found: len(records)}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := im.importOne(ctx, src.Collection, rec)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, errExists):
			res.Skipped++
		default:
			res.Skipped++
			id := rec.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", id, err))
		}
	}

	im.log.Info("import finished",
		zap.String("collection", src.Collection),
		zap.String("path", src.Path),
		zap.Int("found", res.Found),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	if im.rec != nil && res.Imported > 0 {
		im.rec.Record(ctx, admin.Change{
			Action:     audit.ActionImported,
			Collection: src.Collection,
			Summary:    fmt.Sprintf("imported %d of %d documents from %s", res.Imported, res.Found, filepath.Base(src.Path)),
		})
	}
	return res, nil
}

func (im *Importer) importOne(ctx context.Context, collection string, rec Record) error {
	switch collection {
	case reviews.Collection:
		return im.importReview(ctx, rec)
	case articles.Collection:
		return im.importArticle(ctx, rec)
	case events.Collection:
		return im.importEvent(ctx, rec)
	case quotes.Collection:
		return im.importQuote(ctx, rec)
	case brochures.Collection:
		return im.importBrochure(ctx, rec)
	case warranty.Collection:
		return im.importClaim(ctx, rec)
	case registrations.Collection:
		return im.importRegistration(ctx, rec)
	}
	return fmt.Errorf("unknown collection %q", collection)
}

// exists reports whether get finds id. An empty id never exists.
func exists[T any](ctx context.Context, id string, get func(context.Context, string) (*T, error)) error {
	if id == "" {
		return nil
	}
	_, err := get(ctx, id)
	switch {
	case err == nil:
		return errExists
	case errors.Is(err, db.ErrNotFound):
		return nil
	}
	return err
}

// status keeps s when it belongs to valid and falls back to the collection
// default otherwise.
func status(s string, valid []string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if slices.Contains(valid, s) {
		return s
	}
	return ""
}

func (im *Importer) importReview(ctx context.Context, rec Record) error {
	n := docshape.NormalizeReview(rec.ID, rec.Doc)
	if err := exists(ctx, n.ID, im.reviews.GetByID); err != nil {
		return err
	}
	if n.CustomerName == "" || n.Content == "" {
		return errors.New("missing customer name or content")
	}
	_, err := im.reviews.Create(ctx, reviews.Review{
		ID:           n.ID,
		CustomerName: n.CustomerName,
		Location:     n.Location,
		Model:        n.Model,
		Rating:       n.Rating,
		Title:        n.Title,
		Content:      n.Content,
		Featured:     n.Featured,
		Status:       reviews.Status(status(n.Status, reviews.Statuses)),
		CreatedAt:    n.CreatedAt,
	})
	return err
}

func (im *Importer) importArticle(ctx context.Context, rec Record) error {
	n := docshape.NormalizeArticle(rec.ID, rec.Doc)
	if err := exists(ctx, n.ID, im.articles.GetByID); err != nil {
		return err
	}
	if n.Title == "" {
		return errors.New("missing title")
	}
	a := articles.Article{
		ID:         n.ID,
		Slug:       n.Slug,
		Title:      n.Title,
		Excerpt:    n.Excerpt,
		Body:       n.Body,
		BodyFormat: n.BodyFormat,
		CoverImage: n.CoverImage,
		Author:     n.Author,
		Tags:       n.Tags,
		Status:     articles.Status(status(n.Status, articles.Statuses)),
		CreatedAt:  n.CreatedAt,
	}
	if !n.PublishedAt.IsZero() {
		t := n.PublishedAt
		a.PublishedAt = &t
	}
	_, err := im.articles.Create(ctx, a)
	return err
}

func (im *Importer) importEvent(ctx context.Context, rec Record) error {
	n := docshape.NormalizeEvent(rec.ID, rec.Doc)
	if err := exists(ctx, n.ID, im.events.GetByID); err != nil {
		return err
	}
	if n.Title == "" || n.StartsAt.IsZero() {
		return errors.New("missing title or start date")
	}
	_, err := im.events.Create(ctx, events.Event{
		ID:          n.ID,
		Slug:        n.Slug,
		Title:       n.Title,
		Description: n.Description,
		Location:    n.Location,
		StartsAt:    n.StartsAt,
		EndsAt:      n.EndsAt,
		Capacity:    n.Capacity,
		CoverImage:  n.CoverImage,
		Status:      events.Status(status(n.Status, events.Statuses)),
		CreatedAt:   n.CreatedAt,
	})
	return err
}

func (im *Importer) importQuote(ctx context.Context, rec Record) error {
	d := rec.Doc
	id := firstNonEmpty(d.String("id"), rec.ID)
	if err := exists(ctx, id, im.quotes.GetByID); err != nil {
		return err
	}
	q := quotes.Request{
		ID:        id,
		Name:      d.String("name", "fullName"),
		Email:     d.String("email"),
		Phone:     d.String("phone"),
		Postcode:  d.String("postcode"),
		Model:     d.String("model", "caravanModel"),
		Options:   d.Strings("options"),
		TradeIn:   d.Bool("tradeIn", "trade_in"),
		Message:   d.String("message", "comments"),
		DealerID:  d.String("dealerId", "dealer_id", "dealer"),
		Status:    quotes.Status(status(d.String("status"), quotes.Statuses)),
		CreatedAt: docshape.Timestamp(d["createdAt"]),
	}
	if q.Name == "" || q.Email == "" {
		return errors.New("missing name or email")
	}
	_, err := im.quotes.Create(ctx, q)
	return err
}

func (im *Importer) importBrochure(ctx context.Context, rec Record) error {
	d := rec.Doc
	id := firstNonEmpty(d.String("id"), rec.ID)
	if err := exists(ctx, id, im.brochures.GetByID); err != nil {
		return err
	}
	b := brochures.Request{
		ID:             id,
		Name:           d.String("name", "fullName"),
		Email:          d.String("email"),
		Address:        d.String("address", "addressLine1"),
		Suburb:         d.String("suburb", "city"),
		Postcode:       d.String("postcode"),
		Models:         d.Strings("models", "model"),
		Delivery:       brochures.DeliveryEmail,
		MarketingOptIn: d.Bool("marketingOptIn", "newsletter"),
		Status:         brochures.Status(status(d.String("status"), brochures.Statuses)),
		CreatedAt:      docshape.Timestamp(d["createdAt"]),
	}
	if strings.EqualFold(d.String("delivery"), string(brochures.DeliveryPost)) {
		b.Delivery = brochures.DeliveryPost
	}
	if b.Name == "" || b.Email == "" {
		return errors.New("missing name or email")
	}
	_, err := im.brochures.Create(ctx, b)
	return err
}

func (im *Importer) importClaim(ctx context.Context, rec Record) error {
	d := rec.Doc
	id := firstNonEmpty(d.String("id"), rec.ID)
	if err := exists(ctx, id, im.warranty.GetByID); err != nil {
		return err
	}
	c := warranty.Claim{
		ID:            id,
		Name:          d.String("name", "fullName"),
		Email:         d.String("email"),
		Phone:         d.String("phone"),
		ChassisNumber: d.String("chassisNumber", "vin", "chassis_number"),
		Model:         d.String("model", "caravanModel"),
		DealerID:      d.String("dealerId", "dealer_id", "dealer"),
		Description:   d.String("description", "issue", "issueDescription"),
		ImageURLs:     d.Strings("imageUrls", "images", "image_urls"),
		AdminNotes:    d.String("adminNotes", "notes"),
		Status:        warranty.Status(status(d.String("status"), warranty.Statuses)),
		CreatedAt:     docshape.Timestamp(d["createdAt"]),
	}
	if t := docshape.Timestamp(d["purchaseDate"]); !t.IsZero() {
		c.PurchaseDate = &t
	}
	if c.Name == "" || c.ChassisNumber == "" {
		return errors.New("missing name or chassis number")
	}
	_, err := im.warranty.Create(ctx, c)
	return err
}

func (im *Importer) importRegistration(ctx context.Context, rec Record) error {
	d := rec.Doc
	id := firstNonEmpty(d.String("id"), rec.ID)
	if err := exists(ctx, id, im.registrations.GetByID); err != nil {
		return err
	}
	reg := registrations.Registration{
		ID:        id,
		EventID:   d.String("eventId", "event_id"),
		Name:      d.String("name", "fullName"),
		Email:     d.String("email"),
		Phone:     d.String("phone"),
		Status:    registrations.Status(status(d.String("status"), registrations.Statuses)),
		CreatedAt: docshape.Timestamp(d["createdAt"]),
	}
	reg.Attendees, _ = d.Int("attendees", "guests")
	if reg.Name == "" || reg.Email == "" {
		return errors.New("missing name or email")
	}
	ok, err := im.events.Exists(ctx, reg.EventID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("event %q does not exist", reg.EventID)
	}
	_, err = im.registrations.Create(ctx, reg)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
