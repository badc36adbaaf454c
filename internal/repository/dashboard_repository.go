package repository

import "database/sql"

// DashboardAnalytics aggregates the counters shown on the admin dashboard.
type DashboardAnalytics struct {
	ActiveSubscribers  int `json:"active_subscribers"`
	TotalSubscribers   int `json:"total_subscribers"`
	CreatedNewsletters int `json:"created_newsletters"`
	SentNewsletters    int `json:"sent_newsletters"`
	ActiveCategories   int `json:"active_categories"`
	ActiveTemplates    int `json:"active_templates"`
}

type DashboardRepositoryInterface interface {
	GetAnalytics() (*DashboardAnalytics, error)
}

type DashboardRepository struct {
	DB *sql.DB
}

func (r *DashboardRepository) GetAnalytics() (*DashboardAnalytics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE is_active = TRUE AND status = 'A') AS active_subscribers,
			(SELECT COUNT(*) FROM subscriptions) AS total_subscribers,
			(SELECT COUNT(*) FROM newsletter) AS created_newsletters,
			(SELECT COUNT(*) FROM newsletter WHERE status = 'S') AS sent_newsletters,
			(SELECT COUNT(*) FROM categories WHERE status = 'A') AS active_categories,
			(SELECT COUNT(*) FROM templates WHERE is_active = TRUE) AS active_templates
	`
	var a DashboardAnalytics
	err := r.DB.QueryRow(query).Scan(
		&a.ActiveSubscribers,
		&a.TotalSubscribers,
		&a.CreatedNewsletters,
		&a.SentNewsletters,
		&a.ActiveCategories,
		&a.ActiveTemplates,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

var _ DashboardRepositoryInterface = (*DashboardRepository)(nil)
