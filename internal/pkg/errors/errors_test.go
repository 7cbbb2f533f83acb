package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextbus-service/internal/pkg/errors"
)

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "route"})

	assert.Equal(t, "route", detailed.Details["field"])
	assert.Empty(t, errors.ErrInvalidRequest.Details)
	assert.True(t, stderrors.Is(detailed, errors.ErrInvalidRequest))
}

func TestAs_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("insert schedule: %w", errors.ErrDatabaseError)

	appErr, ok := errors.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "ROUTE_REQUIRED: Route must not be empty", errors.ErrRouteRequired.Error())
}
