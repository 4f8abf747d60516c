package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/response"
	"github.com/oksasatya/recipe-api/pkg/validation"
)

const (
	MsgInvalidBody = "Invalid request body"
	MsgInternal    = "Internal server error"
)

// StatusFor maps the kind carried by err to an HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrInvalidInput:
		return http.StatusBadRequest
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperr.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorWriter renders errors as response envelopes. Internal failures get a
// generic message; their cause is only shown when ExposeCause is set.
type ErrorWriter struct {
	Logger      *logrus.Logger
	ExposeCause bool
}

func (w ErrorWriter) Write(c *gin.Context, err error) {
	status := StatusFor(err)
	kind := apperr.KindOf(err)
	detail := gin.H{"code": kind.Error()}

	msg := apperr.MessageOf(err, http.StatusText(status))
	if status == http.StatusInternalServerError {
		msg = MsgInternal
		if w.Logger != nil {
			w.Logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		if w.ExposeCause {
			detail["cause"] = err.Error()
		}
	}
	response.Error[any](c, status, msg, detail)
}

// WriteBindError answers a request whose body could not be decoded.
func (w ErrorWriter) WriteBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, MsgInvalidBody, gin.H{
		"code":    apperr.ErrInvalidInput.Error(),
		"details": validation.ToDetails(err),
	})
}
