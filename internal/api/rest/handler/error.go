package handler

import (
	"errors"
	"net/http"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func handleError(w http.ResponseWriter, lg *logger.Logger, err error) {
	if apiErr, ok := apperrors.As(err); ok {
		if apiErr.Status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeJSON(w, apiErr.Status, errorResponse{Detail: apiErr.Message})
		return
	}

	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Could not validate credentials"})
	case errors.Is(err, model.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Detail: "forbidden"})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
	default:
		lg.Error("HTTP handler: unhandled error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}
