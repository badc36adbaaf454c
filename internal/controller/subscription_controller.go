package controller

import (
	"encoding/json"
	"net/http"

	"github.com/consolenews/newsletter-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type SubscriptionController struct {
	SubscriptionService *service.SubscriptionService
}

func (c *SubscriptionController) List(w http.ResponseWriter, r *http.Request) {
	subscriptions, pagination, err := c.SubscriptionService.List(
		queryInt(r, "page"), queryInt(r, "page_size"),
		r.URL.Query().Get("status"), queryBool(r, "is_active"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       subscriptions,
		"pagination": pagination,
	})
}

func (c *SubscriptionController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	subscription, err := c.SubscriptionService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subscription})
}

// Create is the public sign-up endpoint.
func (c *SubscriptionController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" || body.Email == "" {
		writeMessage(w, http.StatusBadRequest, "name and email are required")
		return
	}

	subscription, err := c.SubscriptionService.Create(body.Name, body.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": subscription})
}

func (c *SubscriptionController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var body struct {
		Status   string `json:"status"`
		IsActive *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subscription, err := c.SubscriptionService.Update(id, body.Status, body.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subscription})
}

func (c *SubscriptionController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := c.SubscriptionService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "subscription deleted")
}

func (c *SubscriptionController) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	subscription, err := c.SubscriptionService.Activate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subscription})
}

func (c *SubscriptionController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	subscription, err := c.SubscriptionService.Deactivate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subscription})
}

func (c *SubscriptionController) FindByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	subscriptions, err := c.SubscriptionService.FindByEmail(email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subscriptions})
}
