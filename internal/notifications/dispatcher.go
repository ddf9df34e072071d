package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/config"
	"github.com/ziadkadry99/caravansite/internal/leads"
)

// SendersFromConfig returns the channels enabled in cfg. Empty settings
// disable a channel.
func SendersFromConfig(cfg config.NotificationsConfig, siteName string) []Sender {
	var out []Sender
	if cfg.WebhookURL != "" {
		out = append(out, NewWebhookSender(cfg.WebhookURL))
	}
	if cfg.SendGridAPIKey != "" {
		out = append(out, NewEmailSender(cfg.SendGridAPIKey, cfg.FromEmail, cfg.SalesEmail, siteName))
	}
	return out
}

// deliveryTimeout bounds one background delivery across all senders.
const deliveryTimeout = 30 * time.Second

// Sender delivers a notification over one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Dispatcher persists an alert for every new lead and hands it to the
// configured senders. It implements leads.Notifier.
type Dispatcher struct {
	store   *Store
	senders []Sender
	log     *zap.Logger

	inflight sync.WaitGroup
}

// NewDispatcher creates a Dispatcher backed by the given store.
func NewDispatcher(store *Store, log *zap.Logger, senders ...Sender) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{store: store, senders: senders, log: log}
}

// NotifyLead records an alert for lead and delivers it in the background,
// so a slow webhook or mail API never holds up the submitting request.
// Delivery outlives the request context but is bounded by deliveryTimeout.
// The alert is marked delivered only when at least one sender is configured
// and all of them succeed; otherwise it stays pending for Redeliver.
func (d *Dispatcher) NotifyLead(ctx context.Context, lead leads.Lead) error {
	n, err := d.store.Create(ctx, FromLead(lead))
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	if len(d.senders) == 0 {
		return nil
	}

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
		defer cancel()
		if err := d.deliver(ctx, n); err != nil {
			d.log.Warn("notification left pending", zap.String("id", n.ID), zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until every background delivery started by NotifyLead has
// finished.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// Redeliver retries a stored notification.
func (d *Dispatcher) Redeliver(ctx context.Context, id string) error {
	n, err := d.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return d.deliver(ctx, n)
}

func (d *Dispatcher) deliver(ctx context.Context, n *Notification) error {
	if len(d.senders) == 0 {
		return nil
	}
	var failed int
	for _, s := range d.senders {
		if err := s.Send(ctx, *n); err != nil {
			failed++
			d.log.Warn("notification delivery failed",
				zap.String("sender", s.Name()),
				zap.String("id", n.ID),
				zap.Error(err),
			)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d senders failed", failed, len(d.senders))
	}
	return d.store.MarkDelivered(ctx, n.ID)
}

// FromLead builds the alert text for a lead.
func FromLead(lead leads.Lead) Notification {
	title := fmt.Sprintf("New %s from %s", collectionLabel(lead.Collection), lead.Name)
	msg := lead.Summary
	if lead.Email != "" {
		msg = fmt.Sprintf("%s (%s)", lead.Summary, lead.Email)
	}
	return Notification{
		Collection: lead.Collection,
		RecordID:   lead.ID,
		Title:      title,
		Message:    msg,
		CreatedAt:  lead.CreatedAt,
	}
}

func collectionLabel(collection string) string {
	switch collection {
	case "quoteRequests":
		return "quote request"
	case "brochureRequests":
		return "brochure request"
	case "warranty-claims":
		return "warranty claim"
	case "eventRegistrations":
		return "event registration"
	case "reviews":
		return "review"
	}
	return collection
}

// WebhookSender POSTs the notification as JSON.
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a WebhookSender for url.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name implements Sender.
func (w *WebhookSender) Name() string { return "webhook" }

// Send implements Sender.
func (w *WebhookSender) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// EmailSender mails the sales inbox through SendGrid.
type EmailSender struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
	site   string
}

// NewEmailSender creates an EmailSender.
func NewEmailSender(apiKey, from, to, siteName string) *EmailSender {
	return &EmailSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(siteName, from),
		to:     mail.NewEmail("Sales", to),
		site:   siteName,
	}
}

// Name implements Sender.
func (e *EmailSender) Name() string { return "email" }

// Send implements Sender.
func (e *EmailSender) Send(ctx context.Context, n Notification) error {
	msg := BuildEmail(e.from, e.to, e.site, n)
	resp, err := e.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// BuildEmail renders the alert e-mail for n.
func BuildEmail(from, to *mail.Email, site string, n Notification) *mail.SGMailV3 {
	subject := fmt.Sprintf("[%s] %s", site, n.Title)
	plain := fmt.Sprintf("%s\n\n%s\n\nRecord: %s/%s\n", n.Title, n.Message, n.Collection, n.RecordID)
	body := fmt.Sprintf("<p><strong>%s</strong></p><p>%s</p><p>Record: %s/%s</p>",
		html.EscapeString(n.Title), html.EscapeString(n.Message), html.EscapeString(n.Collection), html.EscapeString(n.RecordID))
	return mail.NewSingleEmail(from, subject, to, plain, body)
}
