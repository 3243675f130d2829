package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/company-sys/backend/internal/middleware"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// fail writes the response for an error returned by a service.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
	case errors.Is(err, policy.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	default:
		res := serializer.DBErr("", err)
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
			c.JSON(http.StatusInternalServerError, serializer.TrackedErrorResponse{Response: res, TraceID: sc.TraceID().String()})
			return
		}
		c.JSON(http.StatusInternalServerError, res)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
}

func principal(c *gin.Context) *policy.Principal {
	return middleware.Principal(c)
}

// pathID parses the :id route parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func optUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func optDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// checkURL runs the binding "url" rule on a field whose empty value means
// clear, which a struct tag cannot express on a non-nil pointer.
func checkURL(s string) error {
	if s == "" {
		return nil
	}
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator engine unavailable")
	}
	return v.Var(s, "url")
}
