package ports

import "context"

// KeyValueStore est le stockage durable partagé (équivalent localStorage).
// Get renvoie ErrNotFound si la clé n'a jamais été écrite.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
