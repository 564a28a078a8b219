package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

// requireUser returns the caller's user id, aborting with 401 when the
// request carries no validated claims.
func requireUser(c *gin.Context) (int64, bool) {
	claims, ok := getClaims(c)
	if !ok || claims.UserID == 0 {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return 0, false
	}
	return claims.UserID, true
}
