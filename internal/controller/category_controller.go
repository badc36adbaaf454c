package controller

import (
	"encoding/json"
	"net/http"

	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/service"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.CategoryService.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": categories})
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	category, err := c.CategoryService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": category})
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" || body.Description == "" {
		writeMessage(w, http.StatusBadRequest, "name and description are required")
		return
	}

	category := &model.Category{
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
	}
	if err := c.CategoryService.Create(category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": category})
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var body categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := c.CategoryService.Update(id, &model.Category{
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": category})
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := c.CategoryService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "category deleted")
}
