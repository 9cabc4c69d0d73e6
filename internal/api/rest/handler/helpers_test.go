package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	restContext "github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/context"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

var contextManager = restContext.NewManager()

// newRequest builds a request authenticated as user with the given path variables.
func newRequest(method, target, body string, user *model.User, vars map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		r = r.WithContext(contextManager.SetUserToContext(r.Context(), *user))
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorResponse](t, rec).Detail
}
