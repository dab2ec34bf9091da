package repository

import (
	"context"
	"errors"
	"time"
)

const (
	QueryTimeout = 5 * time.Second
	IndexTimeout = 10 * time.Second
)

// ErrDuplicate is returned by repositories when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// NewContext derives a context bounded by timeout. A session carried by parent
// is preserved, so calls made inside a transaction stay in it.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}
