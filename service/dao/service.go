package dao

import (
	"context"
)

// Service is the generic store contract behind the slot registry. K is the
// slot name, T the stored record. Save overwrites (create-or-replace) and
// Load reports absence with ErrNotFound; the supervisor never calls Delete,
// registry entries outlive the tasks they point at.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
