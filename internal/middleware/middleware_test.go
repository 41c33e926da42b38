package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dropout-srv/internal/model"
	"dropout-srv/pkg/log"
	"dropout-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-at-least-32-chars"

func newTestRouter(t *testing.T, roles ...string) (*gin.Engine, scope.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := scope.New(testSecret)
	mw := New(log.NewNop(), mgr, nil)

	r := gin.New()
	r.Use(mw.Recovery(), mw.RequestLogger())
	r.GET("/whoami", mw.Auth(), mw.RequireRoles(roles...), func(c *gin.Context) {
		sc, ok := scope.GetScopeFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sc.UserID)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r, mgr
}

func token(t *testing.T, mgr scope.Manager, userID, role string) string {
	t.Helper()
	tok, err := mgr.CreateToken(scope.Payload{UserID: userID, Role: role})
	require.NoError(t, err)
	return tok
}

func TestAuth(t *testing.T) {
	r, mgr := newTestRouter(t, model.RoleMentor, model.RoleAdmin)

	tcs := map[string]struct {
		header   string
		wantCode int
		wantBody string
	}{
		"missing header": {
			wantCode: http.StatusUnauthorized,
		},
		"not bearer": {
			header:   "Basic abc",
			wantCode: http.StatusUnauthorized,
		},
		"empty token": {
			header:   "Bearer   ",
			wantCode: http.StatusUnauthorized,
		},
		"garbage token": {
			header:   "Bearer not-a-jwt",
			wantCode: http.StatusUnauthorized,
		},
		"student role": {
			header:   "Bearer " + token(t, mgr, "s-1", model.RoleStudent),
			wantCode: http.StatusForbidden,
		},
		"mentor role": {
			header:   "Bearer " + token(t, mgr, "m-1", model.RoleMentor),
			wantCode: http.StatusOK,
			wantBody: "m-1",
		},
		"admin role": {
			header:   "Bearer " + token(t, mgr, "a-1", model.RoleAdmin),
			wantCode: http.StatusOK,
			wantBody: "a-1",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r, mgr := newTestRouter(t, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, mgr, "a-1", model.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
