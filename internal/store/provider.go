// Package store defines the persistent record store collaborator. The core
// treats it as an opaque CRUD service: ids are assigned by the store on
// create, listing order is not guaranteed, and every failure wraps
// apperr.ErrStore without retry.
package store

import (
	"context"

	"github.com/starford/gestorplan/internal/models"
)

// Provider is the capability surface the session requires from the store.
type Provider interface {
	// Create persists a record (its ID field is ignored) and returns the
	// store-assigned id.
	Create(ctx context.Context, r models.Request) (string, error)
	// ListAll returns every stored record in response order.
	ListAll(ctx context.Context) ([]models.Request, error)
	// Update fully replaces the record with the given id.
	Update(ctx context.Context, id string, r models.Request) error
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error
}
