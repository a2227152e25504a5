package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bess-degradation/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestErrorBody(t *testing.T) {
	status, body := errorBody(fmt.Errorf("wrapped: %w", &model.ValidationError{Field: "c_rate", Value: 3, Min: 0.1, Max: 2}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeValidation, body.Error)
	assert.Equal(t, "c_rate", body.Field)
	assert.Contains(t, body.Detail, "0.1 to 2")

	status, body = errorBody(&model.UnknownManufacturerError{Key: "lg", Suggestions: []string{"byd"}})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeUnknownManufacturer, body.Error)
	assert.Equal(t, []string{"byd"}, body.Suggestions)

	status, body = errorBody(errors.New("disk full"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, body.Error)
}
