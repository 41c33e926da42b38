package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgErrors "dropout-srv/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	return c, w
}

func TestError(t *testing.T) {
	collector := pkgErrors.NewValidationErrorCollector()
	collector.Add(pkgErrors.NewValidationError(400, "limit", "too large"))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"http error", pkgErrors.NewHTTPError(http.StatusNotFound, "Alert not found"), http.StatusNotFound, http.StatusNotFound},
		{"http error with app code", pkgErrors.NewHTTPErrorWithStatus(140009, "Invalid transition", http.StatusConflict), http.StatusConflict, 140009},
		{"validation collector", collector, http.StatusBadRequest, ValidationErrorCode},
		{"permission", pkgErrors.NewPermissionError(403, "subject_id", "not assigned"), http.StatusForbidden, 403},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, InternalServerErrorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			Error(c, tt.err, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.ErrorCode)
		})
	}
}

func TestOK(t *testing.T) {
	c, w := newTestContext()
	OK(c, map[string]int{"total_alerts": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error_code":0,"message":"Success","data":{"total_alerts":3}}`, w.Body.String())
}

func TestSplitMessageForDiscord(t *testing.T) {
	long := strings.Repeat("a", DiscordMaxMessageLen+10)
	chunks := splitMessageForDiscord("header\n" + long)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), DiscordMaxMessageLen)
	}
}

func TestBuildInternalServerErrorReportHidesAuthorization(t *testing.T) {
	c, _ := newTestContext()
	c.Request.Header.Set("Authorization", "Bearer secret")
	c.Request.Header.Set("X-Request-ID", "req-1")

	report := buildInternalServerErrorReport(c, "boom", nil)
	assert.NotContains(t, report, "secret")
	assert.Contains(t, report, "req-1")
	assert.Contains(t, report, "Error   : boom")
}
