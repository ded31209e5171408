package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

const (
	CtxUserID   = "auth_user_id"
	CtxUserRole = "auth_user_role"
)

// Auth validates the bearer token and stores the caller's id and role on the
// gin context.
func Auth(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			xhttp.Error(c, errcode.ErrUnauthorized)
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(svcCtx.C.Jwt.Secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				xhttp.Error(c, errcode.ErrTokenExpired)
			} else {
				xhttp.Error(c, errcode.ErrUnauthorized)
			}
			c.Abort()
			return
		}
		if !token.Valid {
			xhttp.Error(c, errcode.ErrUnauthorized)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			xhttp.Error(c, errcode.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(CtxUserID, sub)
		if role, ok := claims["role"].(string); ok {
			c.Set(CtxUserRole, role)
		}
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		xhttp.Error(c, errcode.ErrUnauthorized)
		c.Abort()
	}
}

// AuthUserID returns the authenticated caller's id set by Auth.
func AuthUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
