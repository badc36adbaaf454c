package repository

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
)

type NewsletterRepositoryInterface interface {
	List(offset, limit int, status string) ([]*model.Newsletter, int, error)
	FindByID(id int) (*model.Newsletter, error)
	FindByStatus(status string) ([]*model.Newsletter, error)
	Create(n *model.Newsletter) error
	Update(n *model.Newsletter) error
	UpdateStatus(id int, status string) error
	Delete(id int) error
	CountTotal() (int, error)
	CountByStatus(status string) (int, error)
}

type NewsletterRepository struct {
	DB *sql.DB
}

const newsletterColumns = `id, title, category_id, subject, content, preview_text, status, created_at, updated_at`

func scanNewsletter(row interface{ Scan(...any) error }) (*model.Newsletter, error) {
	var n model.Newsletter
	err := row.Scan(&n.ID, &n.Title, &n.CategoryID, &n.Subject, &n.Content, &n.PreviewText, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsletterRepository) Create(n *model.Newsletter) error {
	if n.Status == "" {
		n.Status = model.NewsletterDraft
	}
	query := `
		INSERT INTO newsletter (title, category_id, subject, content, preview_text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(query, n.Title, n.CategoryID, n.Subject, n.Content, n.PreviewText, n.Status).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NewsletterRepository) FindByID(id int) (*model.Newsletter, error) {
	query := `SELECT ` + newsletterColumns + ` FROM newsletter WHERE id=$1`
	n, err := scanNewsletter(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNewsletterNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NewsletterRepository) FindByStatus(status string) ([]*model.Newsletter, error) {
	query := `SELECT ` + newsletterColumns + ` FROM newsletter WHERE status=$1 ORDER BY id`
	rows, err := r.DB.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	newsletters := []*model.Newsletter{}
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, err
		}
		newsletters = append(newsletters, n)
	}
	return newsletters, rows.Err()
}

func (r *NewsletterRepository) List(offset, limit int, status string) ([]*model.Newsletter, int, error) {
	newsletters := []*model.Newsletter{}
	query := `SELECT ` + newsletterColumns + ` FROM newsletter WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, 0, err
		}
		newsletters = append(newsletters, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM newsletter WHERE 1=1`
	countArgs := []any{}
	if status != "" {
		countQuery += " AND status=$1"
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return newsletters, total, nil
}

func (r *NewsletterRepository) Update(n *model.Newsletter) error {
	query := `
		UPDATE newsletter
		SET title=$1, category_id=$2, subject=$3, content=$4, preview_text=$5, status=$6, updated_at=NOW()
		WHERE id=$7
	`
	_, err := r.DB.Exec(query, n.Title, n.CategoryID, n.Subject, n.Content, n.PreviewText, n.Status, n.ID)
	return err
}

func (r *NewsletterRepository) UpdateStatus(id int, status string) error {
	query := `UPDATE newsletter SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), id)
	return err
}

func (r *NewsletterRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM newsletter WHERE id=$1`, id)
	return err
}

func (r *NewsletterRepository) CountTotal() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM newsletter`).Scan(&count)
	return count, err
}

func (r *NewsletterRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM newsletter WHERE status=$1`, status).Scan(&count)
	return count, err
}

var _ NewsletterRepositoryInterface = (*NewsletterRepository)(nil)
