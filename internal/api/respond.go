package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/catalogue"
	"github.com/news-api/internal/metrics"
	"github.com/rs/zerolog"
)

// respondError writes the single-line client message for err and logs the
// underlying cause.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	kind := apperror.KindOf(err)

	status, msg := http.StatusInternalServerError, apperror.MsgInternal
	switch kind {
	case apperror.KindBadRequest:
		status, msg = http.StatusBadRequest, apperror.MsgBadRequest
	case apperror.KindNotFound:
		status, msg = http.StatusNotFound, apperror.MsgNotFound
	}

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("kind", kind.String()).
		Str("request_id", c.GetString("request_id")).
		Msg("Request failed")

	metrics.RecordError(kind.String())
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

// bindJSON decodes the request body into dst; malformed JSON is a bad request.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// endpointsHandler serves GET /api
func endpointsHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eps, err := catalogue.Endpoints()
		if err != nil {
			respondError(c, log, apperror.Internal(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"endpoints": eps})
	}
}
