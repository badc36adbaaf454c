package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service-layer sentinel errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNewsletterNotFound),
		errors.Is(err, apperrors.ErrSubscriptionNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrTemplateNotFound),
		errors.Is(err, apperrors.ErrShipmentNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrActiveSubscriptionExists):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrCycleRunning):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrWelcomeEmailFailed):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}

// urlID parses the {id} route parameter; a second return of false means the
// 400 response has already been written.
func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b := v == "true"
	return &b
}
