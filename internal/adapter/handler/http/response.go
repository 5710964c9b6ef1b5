package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrOrderDelivered:        http.StatusUnprocessableEntity,
	domain.ErrStatusSkip:            http.StatusUnprocessableEntity,
	domain.ErrPaymentPolicy:         http.StatusUnprocessableEntity,
	domain.ErrProofRequired:         http.StatusUnprocessableEntity,
	domain.ErrWeightRequired:        http.StatusUnprocessableEntity,
	domain.ErrCarrierNotAllowed:     http.StatusUnprocessableEntity,
	domain.ErrStorePickupAssign:     http.StatusUnprocessableEntity,
	domain.ErrCollectedAmount:       http.StatusUnprocessableEntity,
	domain.ErrInvoiceNotOutstanding: http.StatusUnprocessableEntity,
	domain.ErrEmptyReceipt:          http.StatusUnprocessableEntity,
}

// response is the uniform envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func handleSuccess(ctx *gin.Context, data any) {
	handleSuccessWithStatus(ctx, data, http.StatusOK)
}

func handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	ctx.JSON(status, response{Success: true, Data: data})
}

func handleSuccessMessage(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, response{Success: true, Message: message})
}

func errorMessage(err error, status int) string {
	// Internal details stay out of responses.
	if status == http.StatusInternalServerError {
		return domain.ErrInternal.Error()
	}
	return err.Error()
}

func handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.JSON(statusCode, response{Success: false, Message: errorMessage(err, statusCode)})
}

// handleValidationError answers a malformed request body or parameter
// with the binding error detail.
func handleValidationError(ctx *gin.Context, err error) {
	if err == nil {
		err = domain.ErrBadRequest
	}
	ctx.JSON(http.StatusBadRequest, response{
		Success: false,
		Message: err.Error(),
	})
}

// handleAbort ends the middleware chain with an error envelope.
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, response{
		Success: false,
		Message: errorMessage(err, statusCode),
	})
}
