package middleware

import (
	"net/http"
	"strings"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxIdentity     = "currentIdentity"
	CtxSessionToken = "sessionToken"
)

// Auth resolves the bearer token through the session registry and puts
// the current identity and the raw token into the request context.
func Auth(c *core.Core) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractToken(ctx)
		if token == "" {
			util.Error(ctx, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
			ctx.Abort()
			return
		}

		identity, err := c.Whoami(token)
		if err != nil {
			util.Error(ctx, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
			ctx.Abort()
			return
		}

		ctx.Set(CtxIdentity, identity)
		ctx.Set(CtxSessionToken, token)
		ctx.Next()
	}
}

// ExtractToken pulls the bearer token from the Authorization header, or
// from the ?token= query parameter for download links where custom
// headers are not available.
func ExtractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ctx.Query("token")
}
