package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextBranchID = "branchID"
	ContextUserRole = "userRole"
)

// Claims is the token payload issued by the identity service. Tokens are only
// verified here, never issued.
type Claims struct {
	TenantID string `json:"tenantId"`
	BranchID string `json:"branchId,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, "invalid_authorization_header")
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abort(c, "invalid_token")
			return
		}

		if claims.Subject == "" || claims.TenantID == "" {
			abort(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextTenantID, claims.TenantID)
		c.Set(ContextBranchID, claims.BranchID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

func abort(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Unauthorized.",
	})
}

// TenantID and UserID read what AuthMiddleware stored. Both are empty on
// routes that skip it.
func TenantID(c *gin.Context) string {
	return c.GetString(ContextTenantID)
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// BranchID prefers an explicit query parameter over the token's home branch.
func BranchID(c *gin.Context) string {
	if id := c.Query("branch_id"); id != "" {
		return id
	}
	return c.GetString(ContextBranchID)
}
