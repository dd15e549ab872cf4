package store

import (
	"context"
	"database/sql"

	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/google/uuid"
)

// Pagination defaults for List. A zero limit falls back to DefaultListLimit.
const (
	DefaultListLimit = 100
)

// ContactFilter holds the optional search criteria for Search. Fields left
// empty are not applied; provided fields are combined with logical AND.
// Matching is a case-insensitive substring match on every field, including
// email.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
}

// IsEmpty reports whether no filter field is set.
func (f ContactFilter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == ""
}

// ContactStore defines the interface for contact data persistence.
type ContactStore interface {
	// Create saves a new contact to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Contact if data is invalid.
	Create(ctx context.Context, contact *domain.Contact) error

	// GetByID retrieves a contact by its unique ID.
	// Returns ErrContactNotFound if the contact does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)

	// List returns contacts in stable insertion order, skipping the first
	// skip records and returning at most limit. A zero limit uses
	// DefaultListLimit. Negative skip or limit returns ErrInvalidEntity.
	List(ctx context.Context, skip, limit int) ([]*domain.Contact, error)

	// Update replaces an existing contact's stored fields. The contact's ID
	// and CreatedAt are never modified.
	// Returns ErrContactNotFound if the contact does not exist.
	// Returns ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, contact *domain.Contact) error

	// SetDone updates only the contact's done flag.
	// Returns ErrContactNotFound if the contact does not exist.
	SetDone(ctx context.Context, id uuid.UUID, done bool) error

	// Delete removes a contact from the store by its ID.
	// Returns ErrContactNotFound if the contact does not exist; repeated
	// deletes of the same ID fail the same way.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns the contacts matching the filter (see ContactFilter for
	// the matching policy). Returns an empty slice, not an error, when
	// nothing matches.
	Search(ctx context.Context, filter ContactFilter) ([]*domain.Contact, error)

	// ListAll returns every stored contact in insertion order. It feeds the
	// birthday matcher, which operates on an in-memory contact list.
	ListAll(ctx context.Context) ([]*domain.Contact, error)

	// WithTx returns a new ContactStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) ContactStore
}
