package repository

import (
	"database/sql"
	"fmt"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
)

type SubscriptionRepositoryInterface interface {
	List(offset, limit int, status string, isActive *bool) ([]*model.Subscription, int, error)
	FindByID(id int) (*model.Subscription, error)
	FindByUserID(userID int) ([]*model.Subscription, error)
	FindActiveByUserID(userID int) (*model.Subscription, error)
	FindByEmail(email string) ([]*model.Subscription, error)
	FindActiveWithUsers() ([]model.ActiveSubscriber, error)
	Create(s *model.Subscription) error
	Update(s *model.Subscription) error
	SetActive(id int, active bool) error
	Delete(id int) error
}

type SubscriptionRepository struct {
	DB *sql.DB
}

const subscriptionColumns = `id, user_id, status, is_active, created_at, updated_at`

func scanSubscription(row interface{ Scan(...any) error }) (*model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.Status, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) Create(s *model.Subscription) error {
	if s.Status == "" {
		s.Status = model.SubscriptionActive
	}
	query := `
		INSERT INTO subscriptions (user_id, status, is_active, created_at, updated_at)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`
	return r.DB.QueryRow(query, s.UserID, s.Status).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubscriptionRepository) FindByID(id int) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=$1`
	s, err := scanSubscription(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubscriptionRepository) FindByUserID(userID int) ([]*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id=$1 ORDER BY id`
	return r.querySubscriptions(query, userID)
}

// FindActiveByUserID returns nil without error when the user has no active
// subscription; the sign-up pre-check relies on that.
func (r *SubscriptionRepository) FindActiveByUserID(userID int) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id=$1 AND is_active=TRUE LIMIT 1`
	s, err := scanSubscription(r.DB.QueryRow(query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SubscriptionRepository) FindByEmail(email string) ([]*model.Subscription, error) {
	query := `
		SELECT s.id, s.user_id, s.status, s.is_active, s.created_at, s.updated_at
		FROM subscriptions s
		INNER JOIN users u ON u.id = s.user_id
		WHERE u.email=$1
		ORDER BY s.id
	`
	return r.querySubscriptions(query, email)
}

// FindActiveWithUsers returns the active-subscriber set the dispatcher sends
// to: every subscription with is_active = true joined with its owner's
// contact details, in subscription id order.
func (r *SubscriptionRepository) FindActiveWithUsers() ([]model.ActiveSubscriber, error) {
	query := `
		SELECT s.id, s.user_id, u.name, u.email
		FROM subscriptions s
		INNER JOIN users u ON u.id = s.user_id
		WHERE s.is_active=TRUE
		ORDER BY s.id
	`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []model.ActiveSubscriber{}
	for rows.Next() {
		var sub model.ActiveSubscriber
		if err := rows.Scan(&sub.SubscriptionID, &sub.UserID, &sub.Name, &sub.Email); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, sub)
	}
	return subscribers, rows.Err()
}

func (r *SubscriptionRepository) List(offset, limit int, status string, isActive *bool) ([]*model.Subscription, int, error) {
	subscriptions := []*model.Subscription{}
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if isActive != nil {
		query += fmt.Sprintf(" AND is_active=$%d", argPos)
		args = append(args, *isActive)
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
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, 0, err
		}
		subscriptions = append(subscriptions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM subscriptions WHERE 1=1`
	countArgs := []any{}
	argPos = 1
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPos)
		countArgs = append(countArgs, status)
		argPos++
	}
	if isActive != nil {
		countQuery += fmt.Sprintf(" AND is_active=$%d", argPos)
		countArgs = append(countArgs, *isActive)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return subscriptions, total, nil
}

func (r *SubscriptionRepository) Update(s *model.Subscription) error {
	query := `UPDATE subscriptions SET status=$1, is_active=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, s.Status, s.IsActive, s.ID)
	return err
}

func (r *SubscriptionRepository) SetActive(id int, active bool) error {
	query := `UPDATE subscriptions SET is_active=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, active, id)
	return err
}

func (r *SubscriptionRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM subscriptions WHERE id=$1`, id)
	return err
}

func (r *SubscriptionRepository) querySubscriptions(query string, args ...any) ([]*model.Subscription, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := []*model.Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}
	return subscriptions, rows.Err()
}

var _ SubscriptionRepositoryInterface = (*SubscriptionRepository)(nil)
