package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/storefront/internal/server/storage"
	"github.com/iudanet/storefront/pkg/api"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1 << 20

// Коды ошибок в api.ErrorResponse.Error
const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeInternal       = "internal_error"
	codeUnavailable    = "unavailable"
)

func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func sendError(logger *slog.Logger, w http.ResponseWriter, statusCode int, code, message string) {
	sendJSON(logger, w, api.ErrorResponse{Error: code, Message: message}, statusCode)
}

// sendStorageError переводит ошибки storage в HTTP статусы
func sendStorageError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrCartNotFound),
		errors.Is(err, storage.ErrItemNotFound),
		errors.Is(err, storage.ErrProductNotFound):
		sendError(logger, w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, storage.ErrStorageClosed):
		sendError(logger, w, http.StatusServiceUnavailable, codeUnavailable, "service is shutting down")
	default:
		logger.Error("Storage error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		sendError(logger, w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// decodeJSON читает тело запроса, неизвестные поля запрещены
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
