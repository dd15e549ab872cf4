package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/dutsenko/contacts-api/internal/domain/birthday"
	"github.com/dutsenko/contacts-api/internal/store"
	"github.com/google/uuid"
)

// CreateContactInput carries the caller-supplied fields for a new contact.
type CreateContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Birthday       domain.Date
	AdditionalInfo string
}

// ContactService provides contact-related operations, independent of any
// transport. Errors from the store propagate to the caller unmodified; no
// operation retries a failed write.
type ContactService interface {
	// CreateContact validates the input, assigns an ID and persists the
	// new contact.
	CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error)

	// GetContact retrieves a contact by its ID.
	GetContact(ctx context.Context, id uuid.UUID) (*domain.Contact, error)

	// ListContacts returns a stable-order page of contacts.
	ListContacts(ctx context.Context, skip, limit int) ([]*domain.Contact, error)

	// UpdateContact applies a partial or full update to an existing contact.
	UpdateContact(ctx context.Context, id uuid.UUID, update domain.ContactUpdate) (*domain.Contact, error)

	// SetContactDone flips the contact's done flag.
	SetContactDone(ctx context.Context, id uuid.UUID, done bool) (*domain.Contact, error)

	// DeleteContact removes a contact by its ID.
	DeleteContact(ctx context.Context, id uuid.UUID) error

	// SearchContacts returns the contacts matching the filter.
	SearchContacts(ctx context.Context, filter store.ContactFilter) ([]*domain.Contact, error)

	// UpcomingBirthdays returns the contacts whose birthday falls within the
	// next birthday.DefaultWindowDays days of the server's current date.
	UpcomingBirthdays(ctx context.Context) ([]*domain.Contact, error)
}

// ContactServiceError wraps errors from the contact service with context.
type ContactServiceError struct {
	// Operation is the operation that failed (e.g., "create_contact")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ContactServiceError.
func (e *ContactServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contact service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("contact service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ContactServiceError) Unwrap() error {
	return e.Err
}

// newContactServiceError wraps err with operation context. Store sentinel
// errors pass through untouched so the API layer can map them to status
// codes with errors.Is.
func newContactServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) || store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	return &ContactServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// contactServiceImpl implements the ContactService interface
type contactServiceImpl struct {
	contactStore store.ContactStore
	db           *sql.DB
	logger       *slog.Logger
	// now is swappable in tests so birthday windows are deterministic.
	now func() time.Time
}

// NewContactService creates a new ContactService.
// It returns an error if any of the required dependencies are nil.
func NewContactService(
	contactStore store.ContactStore,
	db *sql.DB,
	logger *slog.Logger,
) (ContactService, error) {
	if contactStore == nil {
		return nil, &ContactServiceError{
			Operation: "create_service",
			Message:   "contactStore cannot be nil",
		}
	}
	if db == nil {
		return nil, &ContactServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &contactServiceImpl{
		contactStore: contactStore,
		db:           db,
		logger:       logger.With("component", "contact_service"),
		now:          time.Now,
	}, nil
}

// CreateContact implements ContactService.CreateContact
func (s *contactServiceImpl) CreateContact(
	ctx context.Context,
	input CreateContactInput,
) (*domain.Contact, error) {
	contact, err := domain.NewContact(
		input.FirstName,
		input.LastName,
		input.Email,
		input.Phone,
		input.Birthday,
		input.AdditionalInfo,
	)
	if err != nil {
		s.logger.Warn("failed to build contact from input", "error", err)
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.contactStore.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			"error", err,
			"contact_id", contact.ID)
		return nil, newContactServiceError("create_contact", "failed to save contact", err)
	}

	s.logger.Info("contact created", "contact_id", contact.ID)
	return contact, nil
}

// GetContact implements ContactService.GetContact
func (s *contactServiceImpl) GetContact(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	contact, err := s.contactStore.GetByID(ctx, id)
	if err != nil {
		return nil, newContactServiceError("get_contact", "failed to get contact", err)
	}
	return contact, nil
}

// ListContacts implements ContactService.ListContacts
func (s *contactServiceImpl) ListContacts(ctx context.Context, skip, limit int) ([]*domain.Contact, error) {
	contacts, err := s.contactStore.List(ctx, skip, limit)
	if err != nil {
		return nil, newContactServiceError("list_contacts", "failed to list contacts", err)
	}
	return contacts, nil
}

// UpdateContact implements ContactService.UpdateContact
// The read-modify-write runs in a transaction so concurrent updates to the
// same contact cannot interleave between the read and the write.
func (s *contactServiceImpl) UpdateContact(
	ctx context.Context,
	id uuid.UUID,
	update domain.ContactUpdate,
) (*domain.Contact, error) {
	var updated *domain.Contact

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.contactStore.WithTx(tx)

		contact, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := update.Apply(contact); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		if err := txStore.Update(ctx, contact); err != nil {
			return err
		}

		updated = contact
		return nil
	})

	if err != nil {
		s.logger.Warn("failed to update contact", "error", err, "contact_id", id)
		return nil, newContactServiceError("update_contact", "failed to update contact", err)
	}

	s.logger.Info("contact updated", "contact_id", id)
	return updated, nil
}

// SetContactDone implements ContactService.SetContactDone
func (s *contactServiceImpl) SetContactDone(
	ctx context.Context,
	id uuid.UUID,
	done bool,
) (*domain.Contact, error) {
	if err := s.contactStore.SetDone(ctx, id, done); err != nil {
		return nil, newContactServiceError("set_contact_done", "failed to update done flag", err)
	}

	contact, err := s.contactStore.GetByID(ctx, id)
	if err != nil {
		return nil, newContactServiceError("set_contact_done", "failed to reload contact", err)
	}
	return contact, nil
}

// DeleteContact implements ContactService.DeleteContact
func (s *contactServiceImpl) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := s.contactStore.Delete(ctx, id); err != nil {
		return newContactServiceError("delete_contact", "failed to delete contact", err)
	}

	s.logger.Info("contact deleted", "contact_id", id)
	return nil
}

// SearchContacts implements ContactService.SearchContacts
func (s *contactServiceImpl) SearchContacts(
	ctx context.Context,
	filter store.ContactFilter,
) ([]*domain.Contact, error) {
	contacts, err := s.contactStore.Search(ctx, filter)
	if err != nil {
		return nil, newContactServiceError("search_contacts", "failed to search contacts", err)
	}
	return contacts, nil
}

// UpcomingBirthdays implements ContactService.UpcomingBirthdays
// The matcher itself is pure; this fetches the contact list and hands it the
// server's current UTC date.
func (s *contactServiceImpl) UpcomingBirthdays(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := s.contactStore.ListAll(ctx)
	if err != nil {
		return nil, newContactServiceError("upcoming_birthdays", "failed to list contacts", err)
	}

	today := domain.DateOf(s.now().UTC())
	return birthday.Upcoming(contacts, today, birthday.DefaultWindowDays), nil
}
