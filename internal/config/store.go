package config

import "context"

// Store is the persistence boundary for settings. Implementations return
// sentinel.ErrNotFound for unset keys; interpretation and defaulting belong
// to the Service.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, setting Setting) error
	List(ctx context.Context) ([]Setting, error)
}
