package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"customerAgent/business/recommendation"
	"customerAgent/pkg/logger"
	"customerAgent/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

type errorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders errors that escape the handlers as
// {"message": "..."} with the matching status code.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		logger.Error("Unhandled error",
			"trace_id", recommendation.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, errorResponse{Message: message})
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}

// RequestID propagates X-Request-ID, generating one when absent, and
// stores it as the trace id of the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, id)
			c.SetRequest(req.WithContext(recommendation.ContextWithTraceID(req.Context(), id)))

			return next(c)
		}
	}
}

// Metrics records latency and count of every request by route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route, status).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()

			return nil
		}
	}
}
