package auth

import (
	"net/http"
	"strconv"
	"strings"

	"fieldmate/internal/response"

	"github.com/gin-gonic/gin"
)

const contextKeyPrincipal = "principal"

// PrincipalFrom returns the principal set by RequireMember.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// RequireMember checks the bearer access token and stores the principal in
// the context. Missing or invalid tokens get 401.
func RequireMember(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			// Browsers cannot set headers on websocket upgrades.
			raw = c.Query("access_token")
		}
		if raw == "" {
			response.Abort(c, http.StatusUnauthorized, "authorization required")
			return
		}
		p, err := tokens.Parse(raw)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "authorization required")
			return
		}
		c.Set(contextKeyPrincipal, p)
		c.Next()
	}
}

// RequireLeader must run after RequireMember.
func RequireLeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsLeader() {
			response.Abort(c, http.StatusForbidden, "leader only")
			return
		}
		c.Next()
	}
}

// RateLimitKey charges authenticated requests to the member and the rest to the IP.
func RateLimitKey(c *gin.Context) string {
	if p, ok := PrincipalFrom(c); ok {
		return "member:" + strconv.FormatInt(p.MemberID, 10)
	}
	return "ip:" + c.ClientIP()
}

func bearerToken(h string) string {
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
