package service

import (
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/repository"
)

// Pagination is the metadata returned alongside paginated lists.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func paginationOf(page, pageSize, total int) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
}

type NewsletterService struct {
	Newsletters repository.NewsletterRepositoryInterface
}

func (s *NewsletterService) List(page, pageSize int, status string) ([]*model.Newsletter, Pagination, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	newsletters, total, err := s.Newsletters.List(offset, pageSize, status)
	if err != nil {
		return nil, Pagination{}, err
	}
	return newsletters, paginationOf(page, pageSize, total), nil
}

func (s *NewsletterService) Get(id int) (*model.Newsletter, error) {
	return s.Newsletters.FindByID(id)
}

func (s *NewsletterService) Create(n *model.Newsletter) error {
	if n.Status == "" {
		n.Status = model.NewsletterDraft
	}
	return s.Newsletters.Create(n)
}

func (s *NewsletterService) Update(id int, update *model.Newsletter) (*model.Newsletter, error) {
	existing, err := s.Newsletters.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.CategoryID != nil {
		existing.CategoryID = update.CategoryID
	}
	if update.Subject != "" {
		existing.Subject = update.Subject
	}
	if update.Content != "" {
		existing.Content = update.Content
	}
	if update.PreviewText != "" {
		existing.PreviewText = update.PreviewText
	}
	if update.Status != "" {
		existing.Status = update.Status
	}

	if err := s.Newsletters.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *NewsletterService) Delete(id int) error {
	if _, err := s.Newsletters.FindByID(id); err != nil {
		return err
	}
	return s.Newsletters.Delete(id)
}
