package controller

import (
	"encoding/json"
	"net/http"

	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/service"
)

type TemplateController struct {
	TemplateService *service.TemplateService
}

type templatePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTML        string `json:"html"`
	Text        string `json:"text"`
	CSS         string `json:"css"`
	IsActive    *bool  `json:"is_active"`
}

func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	templates, err := c.TemplateService.List(queryBool(r, "active"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": templates})
}

func (c *TemplateController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	template, err := c.TemplateService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": template})
}

func (c *TemplateController) Create(w http.ResponseWriter, r *http.Request) {
	var body templatePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" || body.HTML == "" {
		writeMessage(w, http.StatusBadRequest, "name and html are required")
		return
	}

	template := &model.Template{
		Name:        body.Name,
		Description: body.Description,
		HTML:        body.HTML,
		Text:        body.Text,
		CSS:         body.CSS,
	}
	if body.IsActive != nil {
		template.IsActive = *body.IsActive
	}
	if err := c.TemplateService.Create(template); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": template})
}

func (c *TemplateController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var body templatePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := c.TemplateService.Update(id, &model.Template{
		Name:        body.Name,
		Description: body.Description,
		HTML:        body.HTML,
		Text:        body.Text,
		CSS:         body.CSS,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": template})
}

func (c *TemplateController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := c.TemplateService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "template deleted")
}

func (c *TemplateController) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	template, err := c.TemplateService.Activate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": template})
}

func (c *TemplateController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	template, err := c.TemplateService.Deactivate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": template})
}
