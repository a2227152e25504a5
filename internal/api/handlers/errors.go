package handlers

import (
	"errors"
	"net/http"

	"bess-degradation/internal/api/models"
	"bess-degradation/internal/metrics"
	"bess-degradation/internal/model"

	"github.com/gin-gonic/gin"
)

// Error codes returned in ErrorResponse.Error.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeValidation          = "validation_error"
	CodeUnknownManufacturer = "unknown_manufacturer"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

// errorBody maps a construction error to its status and response.
func errorBody(err error) (int, models.ErrorResponse) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, models.ErrorResponse{Error: CodeValidation, Detail: ve.Error(), Field: ve.Field}
	}
	var ue *model.UnknownManufacturerError
	if errors.As(err, &ue) {
		return http.StatusNotFound, models.ErrorResponse{Error: CodeUnknownManufacturer, Detail: ue.Error(), Suggestions: ue.Suggestions}
	}
	return http.StatusInternalServerError, models.ErrorResponse{Error: CodeInternal, Detail: err.Error()}
}

func writeError(c *gin.Context, rec metrics.Recorder, err error) {
	status, body := errorBody(err)
	rec.RecordRejected(body.Error, body.Field)
	c.JSON(status, body)
}

func badRequest(c *gin.Context, rec metrics.Recorder, err error) {
	rec.RecordRejected(CodeInvalidRequest, "")
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: CodeInvalidRequest, Detail: err.Error()})
}

// bindError reports a request body that failed to decode. Type mismatches on
// numeric fields are validation errors; anything else is malformed input.
func bindError(c *gin.Context, rec metrics.Recorder, err error) {
	if ve, ok := models.DecodeError(err).(*model.ValidationError); ok {
		writeError(c, rec, ve)
		return
	}
	badRequest(c, rec, err)
}
