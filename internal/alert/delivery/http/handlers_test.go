package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/model"
	"dropout-srv/pkg/log"
	"dropout-srv/pkg/paginator"
	"dropout-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	item   model.Alert
	list   alert.ListOutput
	sweep  alert.SweepOutput
	stats  alert.Stats
	err    error
	gotID  string
	gotIn  any
	gotSc  model.Scope
	called string
}

func (f *fakeUseCase) CreateRiskAlert(ctx context.Context, ip alert.CreateRiskAlertInput) (model.Alert, error) {
	f.called, f.gotIn = "CreateRiskAlert", ip
	return f.item, f.err
}

func (f *fakeUseCase) Create(ctx context.Context, sc model.Scope, ip alert.CreateRiskAlertInput) (model.Alert, error) {
	f.called, f.gotSc, f.gotIn = "Create", sc, ip
	return f.item, f.err
}

func (f *fakeUseCase) Detail(ctx context.Context, sc model.Scope, id string) (model.Alert, error) {
	f.called, f.gotSc, f.gotID = "Detail", sc, id
	return f.item, f.err
}

func (f *fakeUseCase) List(ctx context.Context, sc model.Scope, ip alert.ListInput) (alert.ListOutput, error) {
	f.called, f.gotSc, f.gotIn = "List", sc, ip
	return f.list, f.err
}

func (f *fakeUseCase) Update(ctx context.Context, sc model.Scope, id string, ip alert.UpdateInput) (model.Alert, error) {
	f.called, f.gotSc, f.gotID, f.gotIn = "Update", sc, id, ip
	return f.item, f.err
}

func (f *fakeUseCase) Acknowledge(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error) {
	f.called, f.gotSc, f.gotID, f.gotIn = "Acknowledge", sc, id, notes
	return f.item, f.err
}

func (f *fakeUseCase) Resolve(ctx context.Context, sc model.Scope, id string, notes string) (model.Alert, error) {
	f.called, f.gotSc, f.gotID, f.gotIn = "Resolve", sc, id, notes
	return f.item, f.err
}

func (f *fakeUseCase) Sweep(ctx context.Context) (alert.SweepOutput, error) {
	f.called = "Sweep"
	return f.sweep, f.err
}

func (f *fakeUseCase) Stats(ctx context.Context, sc model.Scope, ip alert.StatsInput) (alert.Stats, error) {
	f.called, f.gotSc, f.gotIn = "Stats", sc, ip
	return f.stats, f.err
}

var (
	mentor = model.Scope{UserID: "m-1", Role: model.RoleMentor}
	admin  = model.Scope{UserID: "a-1", Role: model.RoleAdmin}
)

func newTestEngine(uc alert.UseCase, sc *model.Scope) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(log.NewNop(), uc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if sc != nil {
			c.Request = c.Request.WithContext(scope.SetScopeToContext(c.Request.Context(), *sc))
		}
		c.Next()
	})
	r.GET("/alerts", h.List)
	r.POST("/alerts", h.Create)
	r.GET("/alerts/stats", h.Stats)
	r.POST("/alerts/escalate-sweep", h.Sweep)
	r.GET("/alerts/:id", h.Detail)
	r.PUT("/alerts/:id", h.Update)
	r.POST("/alerts/:id/acknowledge", h.Acknowledge)
	r.POST("/alerts/:id/resolve", h.Resolve)
	return r
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Errors    []fieldError    `json:"errors"`
}

type fieldError struct {
	Code  int    `json:"code"`
	Field string `json:"field"`
}

func (e envelope) fields() []string {
	var out []string
	for _, f := range e.Errors {
		out = append(out, f.Field)
	}
	return out
}

func serve(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return w, e
}

func sampleAlert() model.Alert {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return model.Alert{
		ID:          "al-1",
		StudentID:   "s-1",
		OwnerID:     "m-1",
		RiskScore:   8,
		Severity:    model.SeverityCritical,
		Message:     "Student Asha has been flagged with high dropout risk (Score: 8.0/10)",
		Factors:     []model.AlertFactor{{Feature: "attendance_rate", Importance: "high"}},
		Status:      model.AlertStatusActive,
		SLADeadline: at.Add(24 * time.Hour),
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func TestErrorMapping(t *testing.T) {
	tcs := map[string]struct {
		err      error
		wantCode int
		wantErr  int
	}{
		"alert not found":    {err: alert.ErrAlertNotFound, wantCode: http.StatusNotFound, wantErr: 120003},
		"student not found":  {err: alert.ErrStudentNotFound, wantCode: http.StatusNotFound, wantErr: 120004},
		"forbidden":          {err: alert.ErrForbidden, wantCode: http.StatusForbidden, wantErr: 120005},
		"invalid transition": {err: alert.ErrInvalidTransition, wantCode: http.StatusConflict, wantErr: 120006},
		"invalid input":      {err: alert.ErrInvalidInput, wantCode: http.StatusBadRequest, wantErr: 120007},
		"not escalable":      {err: alert.ErrNotEscalable, wantCode: http.StatusConflict, wantErr: 120008},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := newTestEngine(&fakeUseCase{err: tc.err}, &mentor)

			w, e := serve(t, r, http.MethodGet, "/alerts/al-1", "")

			assert.Equal(t, tc.wantCode, w.Code)
			assert.Equal(t, tc.wantErr, e.ErrorCode)
		})
	}
}

func TestUnknownErrorPanics(t *testing.T) {
	r := newTestEngine(&fakeUseCase{err: assert.AnError}, &mentor)

	assert.Panics(t, func() {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/alerts/al-1", nil))
	})
}

func TestMissingScope(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestEngine(uc, nil)

	for _, target := range []string{"/alerts", "/alerts/al-1", "/alerts/stats"} {
		w, _ := serve(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
	assert.Empty(t, uc.called)
}

func TestDetail(t *testing.T) {
	uc := &fakeUseCase{item: sampleAlert()}
	r := newTestEngine(uc, &mentor)

	w, e := serve(t, r, http.MethodGet, "/alerts/al-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "al-1", uc.gotID)
	assert.Equal(t, mentor, uc.gotSc)

	var got map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &got))
	assert.Equal(t, "m-1", got["mentor_id"])
	assert.Equal(t, "critical", got["severity"])
	assert.Equal(t, "active", got["status"])
	assert.Equal(t, "2026-03-02T09:00:00Z", got["sla_deadline"])
	assert.NotContains(t, got, "acknowledged_at")
	assert.Len(t, got["factors"], 1)
}

func TestList(t *testing.T) {
	uc := &fakeUseCase{
		list: alert.ListOutput{
			Alerts: []model.Alert{sampleAlert()},
			Pagin:  paginator.Paginator{Total: 3, Count: 1, Skip: 0, Limit: 1},
		},
	}
	r := newTestEngine(uc, &admin)

	w, e := serve(t, r, http.MethodGet, "/alerts?status=active&severity=critical&student_id=s-1&mentor_id=m-1&skip=0&limit=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	ip, ok := uc.gotIn.(alert.ListInput)
	require.True(t, ok)
	assert.Equal(t, alert.Filter{
		Status:    model.AlertStatusActive,
		Severity:  model.SeverityCritical,
		StudentID: "s-1",
		OwnerID:   "m-1",
	}, ip.Filter)
	assert.Equal(t, paginator.OffsetQuery{Skip: 0, Limit: 1}, ip.Query)

	var got struct {
		Items []map[string]any `json:"items"`
		Meta  map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &got))
	assert.Len(t, got.Items, 1)
	assert.Equal(t, true, got.Meta["has_next"])
	assert.EqualValues(t, 3, got.Meta["total"])
}

func TestListGenericFilterNames(t *testing.T) {
	uc := &fakeUseCase{}
	w, _ := serve(t, newTestEngine(uc, &admin), http.MethodGet, "/alerts?subject=s-2&owner=m-2", "")

	require.Equal(t, http.StatusOK, w.Code)
	ip, ok := uc.gotIn.(alert.ListInput)
	require.True(t, ok)
	assert.Equal(t, "s-2", ip.Filter.StudentID)
	assert.Equal(t, "m-2", ip.Filter.OwnerID)
}

func TestListWrongQuery(t *testing.T) {
	uc := &fakeUseCase{}
	w, e := serve(t, newTestEngine(uc, &mentor), http.MethodGet, "/alerts?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 120002, e.ErrorCode)
	assert.Empty(t, uc.called)
}

func TestCreate(t *testing.T) {
	tcs := map[string]struct {
		body       string
		wantCode   int
		wantErr    int
		wantFields []string
	}{
		"ok": {
			body:     `{"student_id":"s-1","risk_score":7.5,"risk_category":"high","top_factors":["gpa"]}`,
			wantCode: http.StatusCreated,
		},
		"missing student": {
			body:       `{"risk_score":7.5,"risk_category":"high"}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"student_id"},
		},
		"unknown category": {
			body:       `{"student_id":"s-1","risk_score":7.5,"risk_category":"severe"}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"risk_category"},
		},
		"score out of range": {
			body:       `{"student_id":"s-1","risk_score":11,"risk_category":"high"}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"risk_score"},
		},
		"every field wrong": {
			body:       `{"student_id":"  ","risk_score":-1}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"student_id", "risk_category", "risk_score"},
		},
		"malformed": {
			body:     `{`,
			wantCode: http.StatusBadRequest,
			wantErr:  120001,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{item: sampleAlert()}
			w, e := serve(t, newTestEngine(uc, &admin), http.MethodPost, "/alerts", tc.body)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode != http.StatusCreated {
				assert.Empty(t, uc.called)
				assert.Equal(t, tc.wantErr, e.ErrorCode)
				assert.Equal(t, tc.wantFields, e.fields())
				for _, f := range e.Errors {
					assert.Equal(t, 120001, f.Code)
				}
				return
			}
			assert.Equal(t, alert.CreateRiskAlertInput{
				StudentID:  "s-1",
				Score:      7.5,
				Bucket:     model.RiskBucketHigh,
				TopFactors: []string{"gpa"},
			}, uc.gotIn)
		})
	}
}

func TestUpdate(t *testing.T) {
	uc := &fakeUseCase{item: sampleAlert()}
	r := newTestEngine(uc, &admin)

	w, _ := serve(t, r, http.MethodPut, "/alerts/al-1", `{"status":"acknowledged","response_notes":"called parents"}`)

	require.Equal(t, http.StatusOK, w.Code)
	ip, ok := uc.gotIn.(alert.UpdateInput)
	require.True(t, ok)
	require.NotNil(t, ip.Status)
	assert.Equal(t, model.AlertStatusAcknowledged, *ip.Status)
	require.NotNil(t, ip.Notes)
	assert.Equal(t, "called parents", *ip.Notes)
	assert.Nil(t, ip.OwnerID)
}

func TestUpdateValidation(t *testing.T) {
	tcs := map[string]struct {
		sc         *model.Scope
		body       string
		wantCode   int
		wantErr    int
		wantFields []string
	}{
		"unknown status": {
			sc:         &admin,
			body:       `{"status":"closed"}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"status"},
		},
		"blank mentor": {
			sc:         &admin,
			body:       `{"status":"done","mentor_id":" "}`,
			wantCode:   http.StatusBadRequest,
			wantErr:    400,
			wantFields: []string{"status", "mentor_id"},
		},
		"mentor cannot reassign": {
			sc:       &mentor,
			body:     `{"mentor_id":"m-2"}`,
			wantCode: http.StatusForbidden,
			wantErr:  120005,
		},
		"admin reassigns": {
			sc:       &admin,
			body:     `{"mentor_id":"m-2"}`,
			wantCode: http.StatusOK,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{item: sampleAlert()}
			w, e := serve(t, newTestEngine(uc, tc.sc), http.MethodPut, "/alerts/al-1", tc.body)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, "Update", uc.called)
				return
			}
			assert.Empty(t, uc.called)
			assert.Equal(t, tc.wantErr, e.ErrorCode)
			assert.Equal(t, tc.wantFields, e.fields())
		})
	}
}

func TestNotes(t *testing.T) {
	tcs := map[string]struct {
		target    string
		body      string
		wantCall  string
		wantNotes string
	}{
		"acknowledge with query": {
			target:    "/alerts/al-1/acknowledge?notes=on%20it",
			wantCall:  "Acknowledge",
			wantNotes: "on it",
		},
		"acknowledge without notes": {
			target:   "/alerts/al-1/acknowledge",
			wantCall: "Acknowledge",
		},
		"resolve with body": {
			target:    "/alerts/al-1/resolve",
			body:      `{"notes":"back on track"}`,
			wantCall:  "Resolve",
			wantNotes: "back on track",
		},
		"query wins over body": {
			target:    "/alerts/al-1/resolve?notes=query",
			body:      `{"notes":"body"}`,
			wantCall:  "Resolve",
			wantNotes: "query",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{item: sampleAlert()}
			w, _ := serve(t, newTestEngine(uc, &mentor), http.MethodPost, tc.target, tc.body)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantCall, uc.called)
			assert.Equal(t, "al-1", uc.gotID)
			assert.Equal(t, tc.wantNotes, uc.gotIn)
		})
	}
}

func TestSweep(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		uc := &fakeUseCase{sweep: alert.SweepOutput{
			Candidates: 4,
			Escalated:  2,
			Skipped:    1,
			Failed:     1,
			StartedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Duration:   1500 * time.Millisecond,
		}}
		w, e := serve(t, newTestEngine(uc, &admin), http.MethodPost, "/alerts/escalate-sweep", "")

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(e.Data, &got))
		assert.EqualValues(t, 2, got["escalated_count"])
		assert.EqualValues(t, 4, got["candidates"])
		assert.EqualValues(t, 1500, got["duration_ms"])
	})

	t.Run("store failure", func(t *testing.T) {
		uc := &fakeUseCase{err: assert.AnError}
		w, _ := serve(t, newTestEngine(uc, &admin), http.MethodPost, "/alerts/escalate-sweep", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	interrupted := map[string]error{
		"client went away": context.Canceled,
		"deadline":         fmt.Errorf("sweep: %w", context.DeadlineExceeded),
	}
	for name, err := range interrupted {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{err: err, sweep: alert.SweepOutput{Candidates: 3, Escalated: 1}}
			w, e := serve(t, newTestEngine(uc, &admin), http.MethodPost, "/alerts/escalate-sweep", "")

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, 120009, e.ErrorCode)
		})
	}
}

func TestStats(t *testing.T) {
	uc := &fakeUseCase{stats: alert.Stats{TotalAlerts: 5, ActiveAlerts: 2, AvgResponseTimeHours: 3}}
	w, e := serve(t, newTestEngine(uc, &admin), http.MethodGet, "/alerts/stats?mentor_id=m-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alert.StatsInput{OwnerID: "m-1"}, uc.gotIn)

	var got map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &got))
	assert.EqualValues(t, 5, got["total_alerts"])
	assert.EqualValues(t, 3, got["avg_response_time_hours"])
}
