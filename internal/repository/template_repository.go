package repository

import (
	"database/sql"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
)

type TemplateRepositoryInterface interface {
	FindAll() ([]*model.Template, error)
	FindByActive(active bool) ([]*model.Template, error)
	FindByID(id int) (*model.Template, error)
	Create(t *model.Template) error
	Update(t *model.Template) error
	SetActive(id int, active bool) error
	Delete(id int) error
}

type TemplateRepository struct {
	DB *sql.DB
}

const templateColumns = `id, name, description, html, text, css, is_active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*model.Template, error) {
	var t model.Template
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.HTML, &t.Text, &t.CSS, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) FindAll() ([]*model.Template, error) {
	return r.queryTemplates(`SELECT ` + templateColumns + ` FROM templates ORDER BY id`)
}

func (r *TemplateRepository) FindByActive(active bool) ([]*model.Template, error) {
	return r.queryTemplates(`SELECT `+templateColumns+` FROM templates WHERE is_active=$1 ORDER BY id`, active)
}

func (r *TemplateRepository) FindByID(id int) (*model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id=$1`
	t, err := scanTemplate(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TemplateRepository) Create(t *model.Template) error {
	query := `
		INSERT INTO templates (name, description, html, text, css, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(query, t.Name, t.Description, t.HTML, t.Text, t.CSS, t.IsActive).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TemplateRepository) Update(t *model.Template) error {
	query := `
		UPDATE templates
		SET name=$1, description=$2, html=$3, text=$4, css=$5, is_active=$6, updated_at=NOW()
		WHERE id=$7
	`
	_, err := r.DB.Exec(query, t.Name, t.Description, t.HTML, t.Text, t.CSS, t.IsActive, t.ID)
	return err
}

func (r *TemplateRepository) SetActive(id int, active bool) error {
	query := `UPDATE templates SET is_active=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, active, id)
	return err
}

func (r *TemplateRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM templates WHERE id=$1`, id)
	return err
}

func (r *TemplateRepository) queryTemplates(query string, args ...any) ([]*model.Template, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
