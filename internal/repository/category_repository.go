package repository

import (
	"database/sql"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
)

type CategoryRepositoryInterface interface {
	FindAll() ([]*model.Category, error)
	FindByID(id int) (*model.Category, error)
	Create(c *model.Category) error
	Update(c *model.Category) error
	Delete(id int) error
}

type CategoryRepository struct {
	DB *sql.DB
}

const categoryColumns = `id, name, description, status, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FindAll() ([]*model.Category, error) {
	rows, err := r.DB.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(id int) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1`
	c, err := scanCategory(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(c *model.Category) error {
	if c.Status == "" {
		c.Status = model.CategoryActive
	}
	query := `
		INSERT INTO categories (name, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(query, c.Name, c.Description, c.Status).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) Update(c *model.Category) error {
	query := `UPDATE categories SET name=$1, description=$2, status=$3, updated_at=NOW() WHERE id=$4`
	_, err := r.DB.Exec(query, c.Name, c.Description, c.Status, c.ID)
	return err
}

func (r *CategoryRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM categories WHERE id=$1`, id)
	return err
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)
