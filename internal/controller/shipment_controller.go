package controller

import (
	"net/http"

	"github.com/consolenews/newsletter-service/internal/repository"
)

// ShipmentController exposes the shipment ledger: read access plus the
// maintenance transitions normally driven by the delivery-events consumer.
type ShipmentController struct {
	Shipments repository.ShipmentRepositoryInterface
}

func (c *ShipmentController) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeMessage(w, http.StatusBadRequest, "status query parameter is required")
		return
	}

	shipments, err := c.Shipments.FindByStatus(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": shipments})
}

func (c *ShipmentController) ListByNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	shipments, err := c.Shipments.FindByNewsletterID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": shipments})
}

func (c *ShipmentController) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	shipments, err := c.Shipments.FindByUserID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": shipments})
}

func (c *ShipmentController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	shipment, err := c.Shipments.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": shipment})
}

func (c *ShipmentController) MarkBounced(w http.ResponseWriter, r *http.Request) {
	c.mark(w, r, c.Shipments.MarkBounced, "shipment marked as bounced")
}

func (c *ShipmentController) MarkFailed(w http.ResponseWriter, r *http.Request) {
	c.mark(w, r, c.Shipments.MarkFailed, "shipment marked as failed")
}

func (c *ShipmentController) MarkOpened(w http.ResponseWriter, r *http.Request) {
	c.mark(w, r, c.Shipments.MarkOpened, "shipment marked as opened")
}

func (c *ShipmentController) mark(w http.ResponseWriter, r *http.Request, transition func(int) error, message string) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := transition(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}
