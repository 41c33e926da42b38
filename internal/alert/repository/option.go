package repository

import (
	"errors"
	"time"

	"dropout-srv/internal/alert"
)

var (
	ErrNotFound      = errors.New("alert not found")
	ErrAlreadyExists = errors.New("alert already exists")
)

type ListOptions struct {
	Filter alert.Filter
	Skip   int
	Limit  int
}

type ListOverdueOptions struct {
	Now time.Time

	// EscalatedBefore excludes alerts escalated after this instant.
	EscalatedBefore time.Time
	Limit           int
}

type StatsOptions struct {
	OwnerID string
}
