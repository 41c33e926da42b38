package repository

import "errors"

var ErrNotFound = errors.New("user not found")

// Filter contains filtering options for user queries.
type Filter struct {
	IDs      []string
	Role     string
	IsActive *bool
}

// ListOptions contains options for listing users.
type ListOptions struct {
	Filter Filter
}
