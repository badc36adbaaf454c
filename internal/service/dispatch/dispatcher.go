// Package dispatch implements the newsletter batch dispatcher: it turns
// "which newsletters are due" into "emails sent, outcomes recorded", with
// bounded per-chunk concurrency and pacing between chunks.
package dispatch

import (
	"errors"
	"sync"
	"time"

	"github.com/consolenews/newsletter-service/internal/email"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBatchSize  = 100
	DefaultBatchDelay = time.Second
)

// NewsletterStore is the slice of the newsletter repository the dispatcher
// needs. FindByID returns apperrors.ErrNewsletterNotFound for unknown ids.
type NewsletterStore interface {
	FindByStatus(status string) ([]*model.Newsletter, error)
	FindByID(id int) (*model.Newsletter, error)
	UpdateStatus(id int, status string) error
}

// SubscriberStore yields the active-subscriber set, already joined with the
// owning user's contact details.
type SubscriberStore interface {
	FindActiveWithUsers() ([]model.ActiveSubscriber, error)
}

// ShipmentStore is the shipment ledger surface the dispatcher writes to.
type ShipmentStore interface {
	Create(s *model.Shipment) error
	MarkDelivered(id int) error
	MarkFailed(id int) error
}

// Mailer sends one rendered newsletter email.
type Mailer interface {
	SendNewsletterEmail(data email.NewsletterEmailData) error
}

// Config bounds chunk size and inter-chunk pacing.
type Config struct {
	BatchSize  int
	BatchDelay time.Duration
}

// CycleResult aggregates one scheduled cycle.
type CycleResult struct {
	NewslettersProcessed int
	EmailsSent           int
	EmailsFailed         int
}

type Dispatcher struct {
	newsletters NewsletterStore
	subscribers SubscriberStore
	shipments   ShipmentStore
	mailer      Mailer
	cfg         Config
	log         *logrus.Logger

	// runMu serializes cycles: a trigger that fires while a cycle is still
	// running skips instead of overlapping or queueing.
	runMu sync.Mutex

	sleep func(time.Duration)
}

func New(newsletters NewsletterStore, subscribers SubscriberStore, shipments ShipmentStore, mailer Mailer, cfg Config, log *logrus.Logger) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = DefaultBatchDelay
	}
	return &Dispatcher{
		newsletters: newsletters,
		subscribers: subscribers,
		shipments:   shipments,
		mailer:      mailer,
		cfg:         cfg,
		log:         log,
		sleep:       time.Sleep,
	}
}

// RunScheduledCycle processes every PUBLISHED newsletter against the current
// active-subscriber set and marks each one SENT afterwards. Empty inputs are
// informational no-ops. A failure while processing one newsletter is logged
// and does not abort the rest of the cycle.
func (d *Dispatcher) RunScheduledCycle() (*CycleResult, error) {
	if !d.runMu.TryLock() {
		return nil, apperrors.ErrCycleRunning
	}
	defer d.runMu.Unlock()

	published, err := d.newsletters.FindByStatus(model.NewsletterPublished)
	if err != nil {
		return nil, err
	}

	subscribers, err := d.subscribers.FindActiveWithUsers()
	if err != nil {
		return nil, err
	}

	res := &CycleResult{}

	if len(published) == 0 {
		d.log.Info("no published newsletters found to send")
		return res, nil
	}
	if len(subscribers) == 0 {
		d.log.Info("no active subscriptions found to send to")
		return res, nil
	}

	for _, newsletter := range published {
		sent, failed := d.sendToSubscribers(newsletter, subscribers)
		res.EmailsSent += sent
		res.EmailsFailed += failed

		if err := d.newsletters.UpdateStatus(newsletter.ID, model.NewsletterSent); err != nil {
			// The emails already went out; the status is stale but the
			// newsletter still counts as processed.
			d.log.WithError(err).WithField("newsletter_id", newsletter.ID).
				Error("could not mark newsletter as sent")
		}
		res.NewslettersProcessed++
	}

	d.log.WithFields(logrus.Fields{
		"newsletters":   res.NewslettersProcessed,
		"emails_sent":   res.EmailsSent,
		"emails_failed": res.EmailsFailed,
	}).Info("weekly newsletter cycle finished")

	return res, nil
}

// DispatchNewsletter sends one newsletter to all active subscribers on
// demand. The newsletter's status is left untouched, so manual re-sends are
// idempotent with respect to status. Returns the number of emails sent.
func (d *Dispatcher) DispatchNewsletter(id int) (int, error) {
	newsletter, err := d.newsletters.FindByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNewsletterNotFound) {
			d.log.WithField("newsletter_id", id).Error("newsletter not found for manual dispatch")
		}
		return 0, err
	}

	subscribers, err := d.subscribers.FindActiveWithUsers()
	if err != nil {
		return 0, err
	}

	sent, failed := d.sendToSubscribers(newsletter, subscribers)
	d.log.WithFields(logrus.Fields{
		"newsletter_id": id,
		"emails_sent":   sent,
		"emails_failed": failed,
	}).Info("manual newsletter dispatch finished")

	return sent, nil
}

// sendToSubscribers partitions subscribers into fixed-size chunks processed
// strictly in order. Within a chunk all sends run concurrently and the chunk
// completes only when every send has resolved; the configured delay is
// applied between chunks, never after the last one.
func (d *Dispatcher) sendToSubscribers(newsletter *model.Newsletter, subscribers []model.ActiveSubscriber) (sent, failed int) {
	batchSize := d.cfg.BatchSize

	for i := 0; i < len(subscribers); i += batchSize {
		end := min(i+batchSize, len(subscribers))
		chunk := subscribers[i:end]

		var wg sync.WaitGroup
		var mu sync.Mutex
		for _, subscriber := range chunk {
			wg.Add(1)
			go func(sub model.ActiveSubscriber) {
				defer wg.Done()
				ok := d.sendOne(newsletter, sub)
				mu.Lock()
				if ok {
					sent++
				} else {
					failed++
				}
				mu.Unlock()
			}(subscriber)
		}
		wg.Wait()

		if end < len(subscribers) {
			d.sleep(d.cfg.BatchDelay)
		}
	}

	return sent, failed
}

// sendOne records a PENDING shipment, sends the email, and resolves the
// shipment to DELIVERED or FAILED. A transport error affects only this
// recipient; sibling sends in the chunk keep going.
func (d *Dispatcher) sendOne(newsletter *model.Newsletter, subscriber model.ActiveSubscriber) bool {
	shipment := &model.Shipment{
		NewsletterID: newsletter.ID,
		UserID:       subscriber.UserID,
		Description:  "Newsletter: " + newsletter.Title,
		Status:       model.ShipmentPending,
	}
	if err := d.shipments.Create(shipment); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"newsletter_id": newsletter.ID,
			"user_id":       subscriber.UserID,
		}).Error("could not create shipment record")
		return false
	}

	err := d.mailer.SendNewsletterEmail(email.NewsletterEmailData{
		UserEmail:         subscriber.Email,
		UserName:          subscriber.Name,
		NewsletterTitle:   newsletter.Title,
		NewsletterContent: newsletter.Content,
	})
	if err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"newsletter_id": newsletter.ID,
			"shipment_id":   shipment.ID,
		}).Warn("newsletter email failed")
		if err := d.shipments.MarkFailed(shipment.ID); err != nil {
			d.log.WithError(err).WithField("shipment_id", shipment.ID).
				Error("could not mark shipment as failed")
		}
		return false
	}

	if err := d.shipments.MarkDelivered(shipment.ID); err != nil {
		// The email went out; the ledger is stale but the send counts.
		d.log.WithError(err).WithField("shipment_id", shipment.ID).
			Error("could not mark shipment as delivered")
	}
	return true
}
