package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-order-app/apperrors"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError memetakan error bertipe dari apperrors ke status HTTP.
// ValidationError membawa detail per field; error lain cuma pesan.
// Error yang tidak dikenal dianggap server error.
func RespondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, JSONResponse{
			Status:  false,
			Message: "Validation failed",
			Errors:  verr.Errors,
		})
		return
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperrors.ErrSubmitDisabled),
		errors.Is(err, apperrors.ErrNoRecurringOrders):
		code = http.StatusPreconditionFailed
	case errors.Is(err, apperrors.ErrInvalidTransition):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		ErrorLogger.Printf("server error: %v", err)
	}

	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondErrorCode untuk kasus yang kodenya sudah diketahui caller
// (mis. 401 dari middleware auth).
func RespondErrorCode(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}
