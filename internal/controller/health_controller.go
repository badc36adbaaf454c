package controller

import (
	"database/sql"
	"net/http"
)

type HealthController struct {
	DB *sql.DB
}

func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	if err := c.DB.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
