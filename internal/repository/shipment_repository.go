package repository

import (
	"database/sql"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
)

type ShipmentRepositoryInterface interface {
	Create(s *model.Shipment) error
	FindByID(id int) (*model.Shipment, error)
	FindByNewsletterID(newsletterID int) ([]*model.Shipment, error)
	FindByUserID(userID int) ([]*model.Shipment, error)
	FindByStatus(status string) ([]*model.Shipment, error)
	MarkDelivered(id int) error
	MarkBounced(id int) error
	MarkFailed(id int) error
	MarkOpened(id int) error
}

// ShipmentRepository is the shipment ledger: one row per (newsletter,
// recipient) send attempt. Each row is written by the dispatch attempt that
// created it, plus the maintenance transitions driven by delivery events.
type ShipmentRepository struct {
	DB *sql.DB
}

const shipmentColumns = `id, newsletter_id, user_id, description, status, bounced_at, failed_at, delivered_at, opened_at, created_at, updated_at`

func scanShipment(row interface{ Scan(...any) error }) (*model.Shipment, error) {
	var s model.Shipment
	err := row.Scan(&s.ID, &s.NewsletterID, &s.UserID, &s.Description, &s.Status,
		&s.BouncedAt, &s.FailedAt, &s.DeliveredAt, &s.OpenedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShipmentRepository) Create(s *model.Shipment) error {
	if s.Status == "" {
		s.Status = model.ShipmentPending
	}
	query := `
		INSERT INTO shipping (newsletter_id, user_id, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(query, s.NewsletterID, s.UserID, s.Description, s.Status).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ShipmentRepository) FindByID(id int) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipping WHERE id=$1`
	s, err := scanShipment(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrShipmentNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ShipmentRepository) FindByNewsletterID(newsletterID int) ([]*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipping WHERE newsletter_id=$1 ORDER BY created_at DESC`
	return r.queryShipments(query, newsletterID)
}

func (r *ShipmentRepository) FindByUserID(userID int) ([]*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipping WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryShipments(query, userID)
}

func (r *ShipmentRepository) FindByStatus(status string) ([]*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipping WHERE status=$1 ORDER BY created_at DESC`
	return r.queryShipments(query, status)
}

func (r *ShipmentRepository) MarkDelivered(id int) error {
	return r.transition(id, model.ShipmentDelivered, "delivered_at")
}

func (r *ShipmentRepository) MarkBounced(id int) error {
	return r.transition(id, model.ShipmentBounced, "bounced_at")
}

func (r *ShipmentRepository) MarkFailed(id int) error {
	return r.transition(id, model.ShipmentFailed, "failed_at")
}

// MarkOpened stamps opened_at only; the shipment keeps its current status.
func (r *ShipmentRepository) MarkOpened(id int) error {
	res, err := r.DB.Exec(`UPDATE shipping SET opened_at=NOW(), updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *ShipmentRepository) transition(id int, status, timestampColumn string) error {
	// timestampColumn is one of the fixed lifecycle columns, never user input.
	query := `UPDATE shipping SET status=$1, ` + timestampColumn + `=NOW(), updated_at=NOW() WHERE id=$2`
	res, err := r.DB.Exec(query, status, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) queryShipments(query string, args ...any) ([]*model.Shipment, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := []*model.Shipment{}
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

var _ ShipmentRepositoryInterface = (*ShipmentRepository)(nil)
