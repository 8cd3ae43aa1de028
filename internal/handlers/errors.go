package handlers

import (
	"net/http"

	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const msgInternal = "Internal server error"

// errorMessages are the client-facing texts for the repository sentinels of
// one operation. Empty entries fall back to a 500.
type errorMessages struct {
	notFound   string
	conflict   string
	invalidRef string
}

func internalError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, msgInternal).SetInternal(err)
}

func repoError(err error, msgs errorMessages) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound) && msgs.notFound != "":
		return echo.NewHTTPError(http.StatusNotFound, msgs.notFound).SetInternal(err)
	case errors.Is(err, repositories.ErrInvalidReference) && msgs.invalidRef != "":
		return echo.NewHTTPError(http.StatusNotFound, msgs.invalidRef).SetInternal(err)
	case errors.Is(err, repositories.ErrConflict) && msgs.conflict != "":
		return echo.NewHTTPError(http.StatusConflict, msgs.conflict).SetInternal(err)
	default:
		return internalError(err)
	}
}

// bindRequest decodes the body strictly and validates it.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// ErrorHandler renders every error as {"error": message}. 5xx responses never
// leak their cause; it is logged instead.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = internalError(err)
	}

	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(he.Code)
	}

	if he.Code >= http.StatusInternalServerError {
		cause := err
		if he.Internal != nil {
			cause = he.Internal
		}
		log.Log.WithError(cause).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).Error("request failed")
		message = msgInternal
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, echo.Map{"error": message})
	}
	if err != nil {
		log.Log.WithError(err).Error("cannot write error response")
	}
}
