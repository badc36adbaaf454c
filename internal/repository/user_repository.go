package repository

import (
	"database/sql"

	"github.com/consolenews/newsletter-service/internal/model"
)

type UserRepositoryInterface interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	Create(u *model.User) error
}

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, password, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns nil without error when no user matches; sign-up uses
// that to decide between reusing and creating the owning user.
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.DB.QueryRow(query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *model.User) error {
	if u.Status == "" {
		u.Status = model.UserActive
	}
	query := `
		INSERT INTO users (name, email, password, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(query, u.Name, u.Email, u.Password, u.Status).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
