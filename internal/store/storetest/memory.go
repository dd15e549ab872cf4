// Package storetest provides an in-memory ContactStore for tests that need
// real store semantics without a database.
package storetest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/dutsenko/contacts-api/internal/store"
)

// MemoryContactStore implements store.ContactStore over a slice, mirroring
// the Postgres store's observable behavior: sentinel errors, insertion-order
// listing, unique emails and case-insensitive substring search. All methods
// are safe for concurrent use.
type MemoryContactStore struct {
	mu       sync.Mutex
	contacts []*domain.Contact
}

// NewMemoryContactStore creates an empty in-memory contact store.
func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{}
}

var _ store.ContactStore = (*MemoryContactStore)(nil)

// Create implements store.ContactStore.Create.
func (s *MemoryContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.contacts {
		if existing.Email == contact.Email {
			return store.ErrEmailExists
		}
	}

	stored := *contact
	s.contacts = append(s.contacts, &stored)
	return nil
}

// GetByID implements store.ContactStore.GetByID.
func (s *MemoryContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.contacts {
		if existing.ID == id {
			found := *existing
			return &found, nil
		}
	}
	return nil, store.ErrContactNotFound
}

// List implements store.ContactStore.List.
func (s *MemoryContactStore) List(ctx context.Context, skip, limit int) ([]*domain.Contact, error) {
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must be non-negative", store.ErrInvalidEntity)
	}
	if limit == 0 {
		limit = store.DefaultListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if skip > len(s.contacts) {
		skip = len(s.contacts)
	}
	end := skip + limit
	if end > len(s.contacts) {
		end = len(s.contacts)
	}

	return copyContacts(s.contacts[skip:end]), nil
}

// Update implements store.ContactStore.Update.
func (s *MemoryContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.contacts {
		if existing.ID != contact.ID && existing.Email == contact.Email {
			return store.ErrEmailExists
		}
	}

	for i, existing := range s.contacts {
		if existing.ID == contact.ID {
			stored := *contact
			// CreatedAt is immutable once stored.
			stored.CreatedAt = existing.CreatedAt
			s.contacts[i] = &stored
			return nil
		}
	}
	return store.ErrContactNotFound
}

// SetDone implements store.ContactStore.SetDone.
func (s *MemoryContactStore) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.contacts {
		if existing.ID == id {
			existing.Done = done
			existing.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return store.ErrContactNotFound
}

// Delete implements store.ContactStore.Delete.
func (s *MemoryContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.contacts {
		if existing.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return store.ErrContactNotFound
}

// Search implements store.ContactStore.Search.
func (s *MemoryContactStore) Search(ctx context.Context, filter store.ContactFilter) ([]*domain.Contact, error) {
	match := func(value, substring string) bool {
		return substring == "" ||
			strings.Contains(strings.ToLower(value), strings.ToLower(substring))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []*domain.Contact{}
	for _, existing := range s.contacts {
		if match(existing.FirstName, filter.FirstName) &&
			match(existing.LastName, filter.LastName) &&
			match(existing.Email, filter.Email) {
			found := *existing
			matched = append(matched, &found)
		}
	}
	return matched, nil
}

// ListAll implements store.ContactStore.ListAll.
func (s *MemoryContactStore) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyContacts(s.contacts), nil
}

// WithTx implements store.ContactStore.WithTx. The in-memory store has a
// single shared state, so transaction boundaries are a no-op.
func (s *MemoryContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return s
}

// copyContacts returns a slice of copies so callers cannot mutate stored
// records through the results.
func copyContacts(contacts []*domain.Contact) []*domain.Contact {
	result := make([]*domain.Contact, 0, len(contacts))
	for _, existing := range contacts {
		found := *existing
		result = append(result, &found)
	}
	return result
}
