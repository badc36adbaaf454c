package service_test

import (
	"testing"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/service"
)

type memNewsletterRepo struct {
	nextID int
	items  map[int]*model.Newsletter

	lastOffset int
	lastLimit  int
	lastStatus string
}

func newMemNewsletterRepo() *memNewsletterRepo {
	return &memNewsletterRepo{items: map[int]*model.Newsletter{}}
}

func (m *memNewsletterRepo) List(offset, limit int, status string) ([]*model.Newsletter, int, error) {
	m.lastOffset, m.lastLimit, m.lastStatus = offset, limit, status

	var filtered []*model.Newsletter
	for _, n := range m.items {
		if status != "" && n.Status != status {
			continue
		}
		filtered = append(filtered, n)
	}
	total := len(filtered)

	if offset > total {
		return []*model.Newsletter{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (m *memNewsletterRepo) FindByID(id int) (*model.Newsletter, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNewsletterNotFound
	}
	return n, nil
}

func (m *memNewsletterRepo) FindByStatus(status string) ([]*model.Newsletter, error) {
	var out []*model.Newsletter
	for _, n := range m.items {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNewsletterRepo) Create(n *model.Newsletter) error {
	m.nextID++
	n.ID = m.nextID
	m.items[n.ID] = n
	return nil
}

func (m *memNewsletterRepo) Update(n *model.Newsletter) error {
	m.items[n.ID] = n
	return nil
}

func (m *memNewsletterRepo) UpdateStatus(id int, status string) error {
	n, ok := m.items[id]
	if !ok {
		return apperrors.ErrNewsletterNotFound
	}
	n.Status = status
	return nil
}

func (m *memNewsletterRepo) Delete(id int) error {
	delete(m.items, id)
	return nil
}

func (m *memNewsletterRepo) CountTotal() (int, error) { return len(m.items), nil }

func (m *memNewsletterRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, item := range m.items {
		if item.Status == status {
			n++
		}
	}
	return n, nil
}

func TestNewsletterListClampsPagination(t *testing.T) {
	repo := newMemNewsletterRepo()
	svc := &service.NewsletterService{Newsletters: repo}

	if _, _, err := svc.List(0, 0, ""); err != nil {
		t.Fatal(err)
	}
	if repo.lastOffset != 0 || repo.lastLimit != 20 {
		t.Errorf("expected defaults offset=0 limit=20, got offset=%d limit=%d", repo.lastOffset, repo.lastLimit)
	}

	if _, _, err := svc.List(3, 500, "D"); err != nil {
		t.Fatal(err)
	}
	if repo.lastLimit != 100 {
		t.Errorf("expected page size capped at 100, got %d", repo.lastLimit)
	}
	if repo.lastOffset != 200 {
		t.Errorf("expected offset 200 for page 3, got %d", repo.lastOffset)
	}
	if repo.lastStatus != "D" {
		t.Errorf("expected status filter D, got %q", repo.lastStatus)
	}
}

func TestNewsletterListPaginationMetadata(t *testing.T) {
	repo := newMemNewsletterRepo()
	svc := &service.NewsletterService{Newsletters: repo}

	for i := 0; i < 25; i++ {
		repo.Create(&model.Newsletter{Title: "n", Status: model.NewsletterDraft})
	}

	_, p, err := svc.List(1, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalCount != 25 {
		t.Errorf("expected total 25, got %d", p.TotalCount)
	}
	if p.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", p.TotalPages)
	}
}

func TestNewsletterCreateDefaultsToDraft(t *testing.T) {
	repo := newMemNewsletterRepo()
	svc := &service.NewsletterService{Newsletters: repo}

	n := &model.Newsletter{Title: "t", Subject: "s", Content: "c", PreviewText: "p"}
	if err := svc.Create(n); err != nil {
		t.Fatal(err)
	}
	if n.Status != model.NewsletterDraft {
		t.Errorf("expected draft status, got %q", n.Status)
	}
}

func TestNewsletterUpdateIsPartial(t *testing.T) {
	repo := newMemNewsletterRepo()
	svc := &service.NewsletterService{Newsletters: repo}

	n := &model.Newsletter{Title: "old title", Subject: "subject", Content: "content", Status: model.NewsletterDraft}
	if err := svc.Create(n); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(n.ID, &model.Newsletter{Status: model.NewsletterPublished})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.NewsletterPublished {
		t.Errorf("expected published status, got %q", updated.Status)
	}
	if updated.Title != "old title" || updated.Subject != "subject" {
		t.Error("expected untouched fields to survive a partial update")
	}
}
