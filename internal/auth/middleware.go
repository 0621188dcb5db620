package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName carries the session token for browser clients. API clients may
// send the same token as a bearer header instead.
const CookieName = "absensi_session"

// Denylist reports whether a session token id has been revoked by logout.
type Denylist interface {
	SessionRevoked(ctx context.Context, jti string) bool
}

// SessionAuth enforces a valid, unrevoked session token before protected
// handlers run.
func SessionAuth(signingKey, issuer string, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Harus login terlebih dahulu"})
			return
		}
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Sesi tidak valid"})
			return
		}
		if denylist != nil && denylist.SessionRevoked(c.Request.Context(), claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Sesi sudah berakhir"})
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	authz := c.GetHeader("Authorization")
	if authz != "" && strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("bearer "):])
	}
	return ""
}
