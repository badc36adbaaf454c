package service

import (
	"strings"

	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/repository"
)

type TemplateService struct {
	Templates repository.TemplateRepositoryInterface
}

func (s *TemplateService) List(active *bool) ([]*model.Template, error) {
	if active != nil {
		return s.Templates.FindByActive(*active)
	}
	return s.Templates.FindAll()
}

func (s *TemplateService) Get(id int) (*model.Template, error) {
	return s.Templates.FindByID(id)
}

func (s *TemplateService) Create(t *model.Template) error {
	return s.Templates.Create(t)
}

func (s *TemplateService) Update(id int, update *model.Template) (*model.Template, error) {
	existing, err := s.Templates.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.Description != "" {
		existing.Description = update.Description
	}
	if update.HTML != "" {
		existing.HTML = update.HTML
	}
	if update.Text != "" {
		existing.Text = update.Text
	}
	if update.CSS != "" {
		existing.CSS = update.CSS
	}

	if err := s.Templates.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TemplateService) Delete(id int) error {
	if _, err := s.Templates.FindByID(id); err != nil {
		return err
	}
	return s.Templates.Delete(id)
}

func (s *TemplateService) Activate(id int) (*model.Template, error) {
	return s.setActive(id, true)
}

func (s *TemplateService) Deactivate(id int) (*model.Template, error) {
	return s.setActive(id, false)
}

func (s *TemplateService) setActive(id int, active bool) (*model.Template, error) {
	existing, err := s.Templates.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Templates.SetActive(id, active); err != nil {
		return nil, err
	}
	existing.IsActive = active
	return existing, nil
}

// RenderTemplate substitutes {placeholder} variables into template content.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
