package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/dutsenko/contacts-api/internal/platform/logger"
	"github.com/dutsenko/contacts-api/internal/store"
	"github.com/google/uuid"
)

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// contactColumns is the select list shared by every read query; scanContact
// must stay in sync with it.
const contactColumns = `id, first_name, last_name, email, phone, birthday, additional_info, done, created_at, updated_at`

// NewPostgresContactStore creates a new PostgreSQL implementation of the
// ContactStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore interface
var _ store.ContactStore = (*PostgresContactStore)(nil)

// Create implements store.ContactStore.Create
// It saves a new contact to the database, handling domain validation.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during create",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO contacts (id, first_name, last_name, email, phone, birthday, additional_info, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		contact.ID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
		contact.Done,
		contact.CreatedAt,
		contact.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during contact creation",
				slog.String("contact_id", contact.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return err
	}

	log.Info("contact created successfully",
		slog.String("contact_id", contact.ID.String()))
	return nil
}

// GetByID implements store.ContactStore.GetByID
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving contact by ID", slog.String("contact_id", id.String()))

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1
	`

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found", slog.String("contact_id", id.String()))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact by ID",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return nil, err
	}

	return contact, nil
}

// List implements store.ContactStore.List
// Contacts come back in insertion order (created_at, then id as the
// tiebreaker) so consecutive pages partition the full set consistently.
func (s *PostgresContactStore) List(ctx context.Context, skip, limit int) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must be non-negative", store.ErrInvalidEntity)
	}
	if limit == 0 {
		limit = store.DefaultListLimit
	}

	log.Debug("listing contacts",
		slog.Int("skip", skip),
		slog.Int("limit", limit))

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	return s.queryContacts(ctx, log, query, limit, skip)
}

// Update implements store.ContactStore.Update
// Returns store.ErrContactNotFound if the contact does not exist and
// store.ErrEmailExists if the new email collides with another contact.
func (s *PostgresContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during update",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE contacts
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    birthday = $5, additional_info = $6, done = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
		contact.Done,
		contact.UpdatedAt,
		contact.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during contact update",
				slog.String("contact_id", contact.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return err
	}

	return s.requireRowAffected(log, result, contact.ID, "update")
}

// SetDone implements store.ContactStore.SetDone
// Returns store.ErrContactNotFound if the contact does not exist.
func (s *PostgresContactStore) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contacts
		SET done = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, done, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update contact done flag",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return err
	}

	return s.requireRowAffected(log, result, id, "set done")
}

// Delete implements store.ContactStore.Delete
// Returns store.ErrContactNotFound if the contact does not exist; a repeated
// delete of the same ID fails the same way.
func (s *PostgresContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM contacts WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return err
	}

	if err := s.requireRowAffected(log, result, id, "delete"); err != nil {
		return err
	}

	log.Info("contact deleted successfully", slog.String("contact_id", id.String()))
	return nil
}

// Search implements store.ContactStore.Search
// Every provided filter field is matched as a case-insensitive substring
// (ILIKE) and the fields are AND-combined. Returns an empty slice when
// nothing matches.
func (s *PostgresContactStore) Search(ctx context.Context, filter store.ContactFilter) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE 1=1
	`
	var args []any
	appendFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		query += fmt.Sprintf(" AND %s ILIKE $%d", column, len(args))
	}
	appendFilter("first_name", filter.FirstName)
	appendFilter("last_name", filter.LastName)
	appendFilter("email", filter.Email)
	query += " ORDER BY created_at, id"

	log.Debug("searching contacts",
		slog.String("first_name", filter.FirstName),
		slog.String("last_name", filter.LastName),
		slog.String("email", filter.Email))

	return s.queryContacts(ctx, log, query, args...)
}

// ListAll implements store.ContactStore.ListAll
// It returns every stored contact in insertion order as input for the
// birthday matcher, which works on an in-memory list.
func (s *PostgresContactStore) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY created_at, id
	`

	return s.queryContacts(ctx, log, query)
}

// WithTx implements store.ContactStore.WithTx
// It returns a contact store bound to the given transaction, sharing the
// receiver's logger.
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryContacts runs a multi-row contact query and scans the results.
func (s *PostgresContactStore) queryContacts(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]*domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query contacts", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	contacts := []*domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error("failed to scan contact row", slog.String("error", err.Error()))
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("contacts query completed", slog.Int("count", len(contacts)))
	return contacts, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanContact reads one contactColumns row into a Contact.
func scanContact(row rowScanner) (*domain.Contact, error) {
	var contact domain.Contact
	var additionalInfo sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
		&contact.Birthday,
		&additionalInfo,
		&contact.Done,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.AdditionalInfo = additionalInfo.String
	return &contact, nil
}

// requireRowAffected translates a zero-rows-affected write into
// store.ErrContactNotFound.
func (s *PostgresContactStore) requireRowAffected(
	log *slog.Logger,
	result sql.Result,
	id uuid.UUID,
	operation string,
) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()),
			slog.String("operation", operation))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("contact not found",
			slog.String("contact_id", id.String()),
			slog.String("operation", operation))
		return store.ErrContactNotFound
	}

	return nil
}
