package controller

import (
	"net/http"

	"github.com/consolenews/newsletter-service/internal/service"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func (c *DashboardController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := c.DashboardService.GetAnalytics()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": analytics})
}
