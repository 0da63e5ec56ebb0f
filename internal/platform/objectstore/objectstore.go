// Package objectstore persists uploaded files and hands back public URLs.
package objectstore

import "context"

// Store writes an object under a tenant-scoped key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
