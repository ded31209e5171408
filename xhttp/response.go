package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Inteli-Club5/trbe-backend/errcode"
)

type Response struct {
	Code int32       `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.NoErr.Code(),
		Msg:  errcode.NoErr.Msg(),
		Data: data,
	})
}

// Error writes a business error as the JSON envelope. Unknown errors are
// reported as a generic 500; the underlying message is never leaked to the
// client.
func Error(c *gin.Context, err error) {
	var e *errcode.Err
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, Response{
			Code: errcode.ErrUnexpected.Code(),
			Msg:  errcode.ErrUnexpected.Msg(),
		})
		return
	}

	c.JSON(statusOf(e), Response{
		Code: e.Code(),
		Msg:  e.Msg(),
	})
}

func statusOf(e *errcode.Err) int {
	switch e {
	case errcode.ErrUnauthorized, errcode.ErrTokenExpired:
		return http.StatusUnauthorized
	case errcode.ErrNotFound, errcode.ErrUserNotFound, errcode.ErrTaskNotFound,
		errcode.ErrTaskNotAssigned, errcode.ErrBadgeNotFound, errcode.ErrClubNotFound,
		errcode.ErrFanGroupNotFound, errcode.ErrEventNotFound, errcode.ErrGameNotFound:
		return http.StatusNotFound
	case errcode.ErrUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
