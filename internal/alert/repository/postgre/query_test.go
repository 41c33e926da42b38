package postgres

import (
	"testing"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		opts      repository.ListOptions
		wantCount string
		wantPage  string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter",
			opts:      repository.ListOptions{Skip: 0, Limit: 10},
			wantCount: "SELECT COUNT(*) AS count FROM alerts",
			wantPage:  "SELECT " + alertColumns + " FROM alerts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
			wantArgs:  nil,
		},
		{
			name: "status and owner",
			opts: repository.ListOptions{
				Filter: alert.Filter{Status: model.AlertStatusActive, OwnerID: "m-1"},
				Limit:  10,
			},
			wantCount: "SELECT COUNT(*) AS count FROM alerts WHERE status = $1 AND owner_id = $2",
			wantPage: "SELECT " + alertColumns + " FROM alerts WHERE status = $1 AND owner_id = $2 " +
				"ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4",
			wantArgs: []interface{}{"active", "m-1"},
		},
		{
			name: "every filter",
			opts: repository.ListOptions{
				Filter: alert.Filter{
					Status:    model.AlertStatusEscalated,
					Severity:  model.SeverityHigh,
					StudentID: "s-1",
					OwnerID:   "m-1",
				},
			},
			wantCount: "SELECT COUNT(*) AS count FROM alerts WHERE status = $1 AND severity = $2 AND student_id = $3 AND owner_id = $4",
			wantPage: "SELECT " + alertColumns + " FROM alerts WHERE status = $1 AND severity = $2 AND student_id = $3 AND owner_id = $4 " +
				"ORDER BY created_at DESC, id DESC LIMIT $5 OFFSET $6",
			wantArgs: []interface{}{"escalated", "high", "s-1", "m-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, page, args := buildListQuery(tt.opts)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildOverdueQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)

	query, args := buildOverdueQuery(repository.ListOverdueOptions{Now: now, EscalatedBefore: before, Limit: 50})

	assert.Equal(t, "SELECT "+alertColumns+" FROM alerts WHERE status IN ($1,$2) AND sla_deadline <= $3 "+
		"AND (last_escalated_at IS NULL OR last_escalated_at <= $4) ORDER BY sla_deadline ASC, id ASC LIMIT $5", query)
	assert.Equal(t, []interface{}{"active", "escalated", now, before, 50}, args)
}

func TestBuildStatsQuery(t *testing.T) {
	query, args := buildStatsQuery(repository.StatsOptions{})
	assert.Equal(t, statsSelect, query)
	assert.Empty(t, args)

	query, args = buildStatsQuery(repository.StatsOptions{OwnerID: "m-1"})
	assert.Equal(t, statsSelect+" WHERE owner_id = $1", query)
	assert.Equal(t, []interface{}{"m-1"}, args)
}

func TestAlertRowToModel(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolved := created.Add(2 * time.Hour)

	factors, err := encodeFactors([]model.AlertFactor{{Feature: "attendance_percentage", Importance: "high"}})
	require.NoError(t, err)

	row := alertRow{
		ID:              "a-1",
		StudentID:       "s-1",
		OwnerID:         null.StringFrom("m-1"),
		RiskScore:       8,
		Severity:        "high",
		Message:         "msg",
		Factors:         factors,
		Status:          "resolved",
		SLADeadline:     created.Add(24 * time.Hour),
		CreatedAt:       created,
		UpdatedAt:       resolved,
		ResolvedAt:      null.TimeFrom(resolved),
		ResponseNotes:   null.StringFrom("called parents"),
		EscalationCount: 2,
	}

	got, err := row.toModel()
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.OwnerID)
	assert.Equal(t, model.AlertStatusResolved, got.Status)
	assert.Equal(t, []model.AlertFactor{{Feature: "attendance_percentage", Importance: "high"}}, got.Factors)
	require.NotNil(t, got.ResolvedAt)
	assert.True(t, resolved.Equal(*got.ResolvedAt))
	assert.Nil(t, got.AcknowledgedAt)
	assert.Nil(t, got.LastEscalatedAt)
	assert.Equal(t, "called parents", got.ResponseNotes)
	assert.Equal(t, 2, got.EscalationCount)

	row.Factors = types.JSON("null")
	got, err = row.toModel()
	require.NoError(t, err)
	assert.Equal(t, []model.AlertFactor{}, got.Factors)

	row.Factors = types.JSON("{broken")
	_, err = row.toModel()
	assert.Error(t, err)
}

func TestEncodeFactorsNil(t *testing.T) {
	b, err := encodeFactors(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
