package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/serializer"
)

const principalKey = "principal"

type TokenVerifier interface {
	Verify(raw string) (uuid.UUID, error)
}

type PrincipalLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*policy.Principal, error)
}

// PrincipalAuth resolves the bearer token to a principal and stores it in the
// context. It also sets user_id and role on the current span.
func PrincipalAuth(tokens TokenVerifier, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		userID, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		p, err := loader.Load(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(
				attribute.String("user_id", p.UserID.String()),
				attribute.String("role", string(p.Role)),
			)
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// Principal returns the principal set by PrincipalAuth, or nil.
func Principal(c *gin.Context) *policy.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*policy.Principal)
	return p
}

// WithPrincipal stores p the way PrincipalAuth does.
func WithPrincipal(c *gin.Context, p *policy.Principal) {
	c.Set(principalKey, p)
}
