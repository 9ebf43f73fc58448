package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gridvolt/backend/services/asset-service/internal/models"
)

const (
	tenantHeader = "X-Tenant-ID"
	userHeader   = "X-User-ID"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a classified error to its HTTP status. Unclassified
// errors stay opaque to the caller.
func writeDomainError(w http.ResponseWriter, err error) {
	switch models.KindOf(err) {
	case models.ErrValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case models.ErrNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case models.ErrInvalidOperation, models.ErrConflict:
		writeError(w, http.StatusConflict, err.Error())
	case models.ErrNotConfigured:
		writeError(w, http.StatusFailedDependency, err.Error())
	case models.ErrConnection:
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requireTenant reads the tenant header; the empty return means the error
// response was already written.
func requireTenant(w http.ResponseWriter, r *http.Request) string {
	tenantID := strings.TrimSpace(r.Header.Get(tenantHeader))
	if tenantID == "" {
		writeError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
	}
	return tenantID
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(userHeader))
}

func pagingFromQuery(r *http.Request) models.Paging {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("Limit"))
	skip, _ := strconv.Atoi(q.Get("Skip"))
	onlyCount, _ := strconv.ParseBool(q.Get("OnlyRecordCount"))
	return models.Paging{
		Limit:           limit,
		Skip:            skip,
		SortFields:      q.Get("SortFields"),
		OnlyRecordCount: onlyCount,
	}
}

// parseDateParam parses an RFC3339 query value; the empty string yields a
// zero time without error so the service can report what is missing.
func parseDateParam(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
