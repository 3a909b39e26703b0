// Package kv is the durable key/value facility behind the account store.
// Values are opaque bytes; the store keeps JSON documents under a few fixed
// keys.
package kv

import (
	"context"
)

// Repository is a string-keyed byte store.
//
// Get returns (nil, nil) for an absent key. SetMany writes all pairs or
// none of them.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
