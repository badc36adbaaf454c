package controller

import (
	"encoding/json"
	"net/http"

	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/service"
)

// NewsletterDispatcher is the manual-dispatch surface exposed over HTTP.
type NewsletterDispatcher interface {
	DispatchNewsletter(id int) (int, error)
}

type NewsletterController struct {
	NewsletterService *service.NewsletterService
	Dispatcher        NewsletterDispatcher
}

type newsletterPayload struct {
	Title       string `json:"title"`
	CategoryID  *int   `json:"category_id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	PreviewText string `json:"preview_text"`
	Status      string `json:"status"`
}

func (c *NewsletterController) List(w http.ResponseWriter, r *http.Request) {
	newsletters, pagination, err := c.NewsletterService.List(
		queryInt(r, "page"), queryInt(r, "page_size"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       newsletters,
		"pagination": pagination,
	})
}

func (c *NewsletterController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	newsletter, err := c.NewsletterService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": newsletter})
}

func (c *NewsletterController) Create(w http.ResponseWriter, r *http.Request) {
	var body newsletterPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Title == "" || body.Subject == "" || body.Content == "" || body.PreviewText == "" {
		writeMessage(w, http.StatusBadRequest, "title, subject, content and preview_text are required")
		return
	}

	newsletter := &model.Newsletter{
		Title:       body.Title,
		CategoryID:  body.CategoryID,
		Subject:     body.Subject,
		Content:     body.Content,
		PreviewText: body.PreviewText,
		Status:      body.Status,
	}
	if err := c.NewsletterService.Create(newsletter); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": newsletter})
}

func (c *NewsletterController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var body newsletterPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newsletter, err := c.NewsletterService.Update(id, &model.Newsletter{
		Title:       body.Title,
		CategoryID:  body.CategoryID,
		Subject:     body.Subject,
		Content:     body.Content,
		PreviewText: body.PreviewText,
		Status:      body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": newsletter})
}

func (c *NewsletterController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := c.NewsletterService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "newsletter deleted")
}

// Dispatch triggers a manual send of one newsletter to all active
// subscribers. The newsletter's status is not changed.
func (c *NewsletterController) Dispatch(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	sent, err := c.Dispatcher.DispatchNewsletter(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"newsletter_id": id,
		"emails_sent":   sent,
	})
}
