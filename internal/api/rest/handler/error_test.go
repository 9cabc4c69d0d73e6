package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/testutil"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         error
		wantStatus int
		wantDetail string
		wantBearer bool
	}{
		{
			name:       "api error passthrough",
			in:         apperrors.NewErrRecipeNotFound(),
			wantStatus: http.StatusNotFound,
			wantDetail: "Recipe not found",
		},
		{
			name:       "wrapped api error",
			in:         fmt.Errorf("outer: %w", apperrors.NewErrValidation("title is required")),
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "title is required",
		},
		{
			name:       "api 401 carries challenge",
			in:         apperrors.NewErrInvalidCredentials(),
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Incorrect email or password",
			wantBearer: true,
		},
		{
			name:       "unauthenticated",
			in:         model.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not validate credentials",
			wantBearer: true,
		},
		{
			name:       "forbidden",
			in:         fmt.Errorf("check: %w", model.ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantDetail: "forbidden",
		},
		{
			name:       "model not found",
			in:         model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "not found",
		},
		{
			name:       "other -> internal",
			in:         errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			handleError(rec, testutil.MakeNoopLogger(), tt.in)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"detail":"`+tt.wantDetail+`"}`, rec.Body.String())
			if tt.wantBearer {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
