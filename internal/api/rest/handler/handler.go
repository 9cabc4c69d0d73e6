// Package handler implements the HTTP endpoints of the REST API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewErrValidation("request body is required")
		}
		return apperrors.NewErrValidation("invalid request body: %s", err.Error())
	}
	return nil
}

func currentUser(cm model.ContextManager, r *http.Request) (model.User, error) {
	user, ok := cm.GetUserFromContext(r.Context())
	if !ok {
		return model.User{}, model.ErrUnauthenticated
	}
	return user, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperrors.NewErrValidation("%s must be a valid id", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewErrValidation("%s must be an integer", name)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.NewErrValidation("%s must be a boolean", name)
	}
	return v, nil
}

func queryDate(r *http.Request, name string) (*model.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, apperrors.NewErrValidation("%s must be a date (YYYY-MM-DD)", name)
	}
	return &d, nil
}

// userAndID resolves the caller and the id path variable name, writing the
// error response itself when either is unavailable.
func userAndID(w http.ResponseWriter, r *http.Request, cm model.ContextManager, lg *logger.Logger, name string) (model.User, uuid.UUID, bool) {
	user, err := currentUser(cm, r)
	if err != nil {
		handleError(w, lg, err)
		return model.User{}, uuid.Nil, false
	}
	id, err := pathUUID(r, name)
	if err != nil {
		handleError(w, lg, err)
		return model.User{}, uuid.Nil, false
	}
	return user, id, true
}
