package service

import (
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/repository"
)

type CategoryService struct {
	Categories repository.CategoryRepositoryInterface
}

func (s *CategoryService) List() ([]*model.Category, error) {
	return s.Categories.FindAll()
}

func (s *CategoryService) Get(id int) (*model.Category, error) {
	return s.Categories.FindByID(id)
}

func (s *CategoryService) Create(c *model.Category) error {
	return s.Categories.Create(c)
}

func (s *CategoryService) Update(id int, update *model.Category) (*model.Category, error) {
	existing, err := s.Categories.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.Description != "" {
		existing.Description = update.Description
	}
	if update.Status != "" {
		existing.Status = update.Status
	}

	if err := s.Categories.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CategoryService) Delete(id int) error {
	if _, err := s.Categories.FindByID(id); err != nil {
		return err
	}
	return s.Categories.Delete(id)
}
