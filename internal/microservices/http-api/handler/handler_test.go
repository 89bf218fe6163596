package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/policy"
	"bookhub/internal/shared"
)

var (
	member = policy.Actor{UserID: "user-1", Username: "alice", Role: shared.RoleMember}
	admin  = policy.Actor{UserID: "admin-1", Username: "root", Role: shared.RoleAdmin, IsStaff: true}
)

// routes mounts handlers on a router group
type routes func(rg *gin.RouterGroup)

// mockAuthMiddleware stands in for the token middleware: it stores actor
// as if its token had been verified.
func mockAuthMiddleware(actor policy.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor.Authenticated() {
			c.Set(middleware.ClaimsKey, &shared.AuthClaims{UserID: actor.UserID, Username: actor.Username, Role: actor.Role})
		}
		c.Set(middleware.ActorKey, actor)
		c.Next()
	}
}

func setupRouter(actor policy.Actor, register routes) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", mockAuthMiddleware(actor))
	register(api)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
