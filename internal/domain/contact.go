package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Contact
var (
	ErrEmptyContactID        = errors.New("contact ID cannot be empty")
	ErrEmptyContactFirstName = errors.New("contact first name cannot be empty")
	ErrEmptyContactLastName  = errors.New("contact last name cannot be empty")
	ErrEmptyContactEmail     = errors.New("contact email cannot be empty")
	ErrInvalidContactEmail   = errors.New("invalid contact email format")
	ErrEmptyContactBirthday  = errors.New("contact birthday cannot be empty")
)

// Contact represents a single address-book record. The ID is assigned on
// creation and never changes; the birthday's year is stored but only its
// month and day participate in birthday-window matching.
type Contact struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       Date      `json:"birthday"`
	AdditionalInfo string    `json:"additional_info,omitempty"`
	Done           bool      `json:"done"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewContact creates a new Contact with the given fields.
// It generates a new UUID for the contact ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewContact(firstName, lastName, email, phone string, birthday Date, additionalInfo string) (*Contact, error) {
	now := time.Now().UTC()
	contact := &Contact{
		ID:             uuid.New(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          phone,
		Birthday:       birthday,
		AdditionalInfo: additionalInfo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

// Validate checks if the Contact has valid data.
// Returns an error if any field fails validation.
func (c *Contact) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyContactID
	}

	if strings.TrimSpace(c.FirstName) == "" {
		return ErrEmptyContactFirstName
	}

	if strings.TrimSpace(c.LastName) == "" {
		return ErrEmptyContactLastName
	}

	if c.Email == "" {
		return ErrEmptyContactEmail
	}

	if !validateEmailFormat(c.Email) {
		return ErrInvalidContactEmail
	}

	if c.Birthday.IsZero() {
		return ErrEmptyContactBirthday
	}

	return nil
}

// ContactUpdate describes a partial update of a Contact. Nil fields are
// left unchanged by Apply.
type ContactUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Birthday       *Date
	AdditionalInfo *string
	Done           *bool
}

// Apply merges the set fields of the update onto the contact and refreshes
// the UpdatedAt timestamp. The contact's ID and CreatedAt are never touched.
// Returns an error if the merged contact fails validation, in which case
// the contact is left unmodified.
func (u ContactUpdate) Apply(c *Contact) error {
	merged := *c
	if u.FirstName != nil {
		merged.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		merged.LastName = *u.LastName
	}
	if u.Email != nil {
		merged.Email = *u.Email
	}
	if u.Phone != nil {
		merged.Phone = *u.Phone
	}
	if u.Birthday != nil {
		merged.Birthday = *u.Birthday
	}
	if u.AdditionalInfo != nil {
		merged.AdditionalInfo = *u.AdditionalInfo
	}
	if u.Done != nil {
		merged.Done = *u.Done
	}
	merged.UpdatedAt = time.Now().UTC()

	if err := merged.Validate(); err != nil {
		return err
	}

	*c = merged
	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// The domain needs at least "a.b" with the dot away from both ends.
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 {
		return false
	}

	dotIndex := strings.IndexByte(domainPart, '.')
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
