package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
)

const maxRetries = 3

// ShipmentTransitions is the slice of the shipment ledger the consumer drives.
type ShipmentTransitions interface {
	MarkDelivered(id int) error
	MarkBounced(id int) error
	MarkFailed(id int) error
	MarkOpened(id int) error
}

// Publisher is the amqp.Channel surface used to re-enqueue failed events.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DeliveryEvent is the payload published by the email provider webhook
// bridge. Type is one of "delivered", "bounced", "failed" or "opened".
type DeliveryEvent struct {
	ShipmentID int    `json:"shipment_id"`
	Type       string `json:"type"`
}

// Consumer applies provider delivery events to the shipment ledger.
type Consumer struct {
	Shipments ShipmentTransitions
	Publisher Publisher
	Queue     string
	Log       *logrus.Logger
}

// Run consumes deliveries until the channel closes. Malformed payloads and
// events for shipments that no longer exist are acked and dropped. A transient
// handler failure is re-enqueued as a fresh message with an incremented
// x-retry-count header (a plain nack-requeue would redeliver the original
// headers and the cap would never engage); after maxRetries the event is
// dropped.
func (c *Consumer) Run(deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		var event DeliveryEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			c.Log.WithError(err).Warn("dropping malformed delivery event")
			d.Ack(false)
			continue
		}

		if err := c.Handle(event); err != nil {
			c.resolveFailure(d, event, err)
			continue
		}

		d.Ack(false)
	}
}

func (c *Consumer) resolveFailure(d amqp.Delivery, event DeliveryEvent, handleErr error) {
	if errors.Is(handleErr, apperrors.ErrShipmentNotFound) {
		c.Log.WithField("shipment_id", event.ShipmentID).
			Warn("dropping event for unknown shipment")
		d.Ack(false)
		return
	}

	retries := retryCount(d)
	if retries >= maxRetries {
		c.Log.WithError(handleErr).WithField("shipment_id", event.ShipmentID).
			Error("delivery event permanently failed")
		d.Ack(false)
		return
	}

	err := c.Publisher.Publish("", c.Queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        d.Body,
		Headers:     amqp.Table{"x-retry-count": int32(retries + 1)},
	})
	if err != nil {
		// Could not re-enqueue; fall back to a broker requeue so the
		// event is not lost, even though that redelivery keeps the old
		// retry count.
		c.Log.WithError(err).WithField("shipment_id", event.ShipmentID).
			Error("could not re-enqueue delivery event")
		d.Nack(false, true)
		return
	}

	c.Log.WithError(handleErr).WithFields(logrus.Fields{
		"shipment_id": event.ShipmentID,
		"attempt":     retries + 1,
	}).Warn("delivery event failed, re-enqueued")
	d.Ack(false)
}

// Handle maps a single delivery event onto a shipment transition.
func (c *Consumer) Handle(event DeliveryEvent) error {
	var err error
	switch event.Type {
	case "delivered":
		err = c.Shipments.MarkDelivered(event.ShipmentID)
	case "bounced":
		err = c.Shipments.MarkBounced(event.ShipmentID)
	case "failed":
		err = c.Shipments.MarkFailed(event.ShipmentID)
	case "opened":
		err = c.Shipments.MarkOpened(event.ShipmentID)
	default:
		c.Log.WithField("type", event.Type).Warn("ignoring unknown delivery event type")
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply %s event to shipment %d: %w", event.Type, event.ShipmentID, err)
	}

	c.Log.WithFields(logrus.Fields{
		"shipment_id": event.ShipmentID,
		"type":        event.Type,
	}).Info("delivery event applied")
	return nil
}

func retryCount(d amqp.Delivery) int {
	v, ok := d.Headers["x-retry-count"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
