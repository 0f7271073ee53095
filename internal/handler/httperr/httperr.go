package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lendhub/internal/pkg/errs"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a usecase error to a status through the error taxonomy, so
// handlers never inspect individual business rules.
func Abort(c *gin.Context, err error) {
	status := statusFor(err)

	resp := Response{Status: status}
	resp.Error.Message = err.Error()

	var coded *errs.CodedError
	if errors.As(err, &coded) {
		resp.Error.Code = coded.Code
		resp.Error.Message = coded.Msg
		resp.Detail = coded.Detail
	}
	if status == http.StatusInternalServerError {
		// Internals stay in the log, not in the payload.
		resp.Error.Message = "Internal server error"
		resp.Detail = nil
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
