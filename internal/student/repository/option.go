package repository

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("student not found")

type Filter struct {
	MentorID string
	IsActive *bool
}

type ListOptions struct {
	Filter Filter
}

type UpdateRiskScoreOptions struct {
	ID    string
	Score float64
	At    time.Time
}

type ListPerformanceOptions struct {
	StudentID string
	Since     time.Time
}
