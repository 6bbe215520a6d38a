// Package store provides the durable key-value persistence used for session
// and audit state. Keys are flat strings ("auth_user", "audit_logs"); values
// are opaque JSON documents owned by the caller.
package store

import "context"

// KV is the persistence contract. Implementations must treat a missing key
// as (nil, false, nil), never as an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
