package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/shared/apperr"
)

// RequireToken takes the caller's API access token from "Authorization: Bearer"
// and puts it on the request context, where the remote client picks it up.
// Requests without one are rejected; no token is ever shared between callers.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			Fail(c, apperr.UnauthorizedErr("Missing API token. Send it as Authorization: Bearer <access token>."))
			return
		}
		ctx := auth.WithTokens(c.Request.Context(), auth.Tokens{Access: token})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearer(h string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
