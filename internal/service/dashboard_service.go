package service

import "github.com/consolenews/newsletter-service/internal/repository"

type DashboardService struct {
	Dashboard repository.DashboardRepositoryInterface
}

func (s *DashboardService) GetAnalytics() (*repository.DashboardAnalytics, error) {
	return s.Dashboard.GetAnalytics()
}
