// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/forkcast/v2/pkg/errors"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// weekDateLayout is the wire format for week query parameters
const weekDateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "request failed")
	requestID := middleware.GetReqID(r.Context())

	logger.Error("Request error",
		zap.String("request_id", requestID),
		zap.String("code", string(appErr.Code)),
		zap.String("message", appErr.Message),
		zap.Error(appErr.Cause),
	)

	writeJSON(w, logger, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}

// parseWeekParam reads the "week" query parameter. An absent parameter
// means the current week.
func parseWeekParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return time.Now(), nil
	}

	week, err := time.ParseInLocation(weekDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, errors.NewBadRequestError("week must be formatted as YYYY-MM-DD")
	}
	return week, nil
}
