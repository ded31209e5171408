package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/config"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

const testJwtSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	svcCtx := &svc.ServerCtx{C: &config.Config{Jwt: config.Jwt{Secret: testJwtSecret}}}
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(svcCtx)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		xhttp.OkJson(c, gin.H{"user_id": AuthUserID(c), "role": c.GetString(CtxUserRole)})
	})
	r.GET("/me", handlers...)
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doAuthed(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) xhttp.Response {
	t.Helper()
	var resp xhttp.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, testJwtSecret, jwt.MapClaims{
		"sub":  "user-1",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthed(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "user-1", data["user_id"])
	assert.Equal(t, "user", data["role"])
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter()

	w := doAuthed(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errcode.ErrUnauthorized.Code(), decodeEnvelope(t, w).Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, testJwtSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := doAuthed(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errcode.ErrTokenExpired.Code(), decodeEnvelope(t, w).Code)
}

func TestAuthRejectsForeignSignature(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthed(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errcode.ErrUnauthorized.Code(), decodeEnvelope(t, w).Code)
}

func TestAuthRequiresSubject(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, testJwtSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthed(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleGatesByRole(t *testing.T) {
	r := newAuthRouter(RequireRole("admin", "moderator"))

	userToken := signToken(t, testJwtSecret, jwt.MapClaims{
		"sub":  "user-1",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w := doAuthed(r, userToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	adminToken := signToken(t, testJwtSecret, jwt.MapClaims{
		"sub":  "admin-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	w = doAuthed(r, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
