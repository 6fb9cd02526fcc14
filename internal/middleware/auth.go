package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/auth"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
)

const (
	ContextCaller = "caller"
	ContextClaims = "claims"
)

// AuthMiddleware answers 401 without a bearer token and 403 for an invalid,
// expired or revoked one, before any handler runs.
func AuthMiddleware(svc *auth.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			httperr.Respond(c, log, httperr.Unauthorized("No token provided"))
			c.Abort()
			return
		}

		claims, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			httperr.Respond(c, log, err)
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextCaller, account.Caller{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// RequireOfficial must run after AuthMiddleware.
func RequireOfficial() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsOfficial() {
			httperr.Write(c, httperr.StatusOf(httperr.KindForbidden), "Officials only")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CallerFrom returns the authenticated caller, or the zero Caller on public
// routes.
func CallerFrom(c *gin.Context) account.Caller {
	if v, ok := c.Get(ContextCaller); ok {
		if caller, ok := v.(account.Caller); ok {
			return caller
		}
	}
	return account.Caller{}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
