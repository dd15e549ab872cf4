package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dutsenko/contacts-api/internal/api/shared"
	"github.com/dutsenko/contacts-api/internal/domain"
	"github.com/dutsenko/contacts-api/internal/service"
	"github.com/dutsenko/contacts-api/internal/store"
)

// CreateContactRequest represents the request body for creating a contact.
// Birthday is an ISO-8601 date string (YYYY-MM-DD).
type CreateContactRequest struct {
	FirstName      string `json:"first_name"      validate:"required,min=1"`
	LastName       string `json:"last_name"       validate:"required,min=1"`
	Email          string `json:"email"           validate:"required,email"`
	Phone          string `json:"phone"           validate:"required,min=1"`
	Birthday       string `json:"birthday"        validate:"required"`
	AdditionalInfo string `json:"additional_info" validate:"omitempty"`
}

// UpdateContactRequest represents the request body for updating a contact.
// Omitted fields are left unchanged.
type UpdateContactRequest struct {
	FirstName      *string `json:"first_name"      validate:"omitempty,min=1"`
	LastName       *string `json:"last_name"       validate:"omitempty,min=1"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	Phone          *string `json:"phone"           validate:"omitempty,min=1"`
	Birthday       *string `json:"birthday"        validate:"omitempty"`
	AdditionalInfo *string `json:"additional_info" validate:"omitempty"`
	Done           *bool   `json:"done"            validate:"omitempty"`
}

// UpdateContactStatusRequest represents the request body for the done-status
// toggle.
type UpdateContactStatusRequest struct {
	Done *bool `json:"done" validate:"required"`
}

// ContactResponse represents the response data for a contact.
type ContactResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       string    `json:"birthday"`
	AdditionalInfo string    `json:"additional_info,omitempty"`
	Done           bool      `json:"done"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService service.ContactService
	logger         *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService service.ContactService, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContactHandler{
		contactService: contactService,
		logger:         logger.With(slog.String("component", "contact_handler")),
	}
}

// CreateContact handles POST /contacts requests
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	birthdayDate, err := domain.ParseDate(req.Birthday)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birthday: expected YYYY-MM-DD")
		return
	}

	contact, err := h.contactService.CreateContact(r.Context(), service.CreateContactInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       birthdayDate,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, contactToResponse(contact))
}

// ListContacts handles GET /contacts?skip=&limit= requests
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	skip, ok := h.queryInt(w, r, "skip", 0)
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(r.Context(), skip, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactsToResponse(contacts))
}

// GetContact handles GET /contacts/{id} requests
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contactID(w, r)
	if !ok {
		return
	}

	contact, err := h.contactService.GetContact(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactToResponse(contact))
}

// UpdateContact handles PUT /contacts/{id} requests
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contactID(w, r)
	if !ok {
		return
	}

	var req UpdateContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := domain.ContactUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		AdditionalInfo: req.AdditionalInfo,
		Done:           req.Done,
	}
	if req.Birthday != nil {
		birthdayDate, err := domain.ParseDate(*req.Birthday)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birthday: expected YYYY-MM-DD")
			return
		}
		update.Birthday = &birthdayDate
	}

	contact, err := h.contactService.UpdateContact(r.Context(), id, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactToResponse(contact))
}

// UpdateContactStatus handles PATCH /contacts/{id} requests
func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contactID(w, r)
	if !ok {
		return
	}

	var req UpdateContactStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	contact, err := h.contactService.SetContactDone(r.Context(), id, *req.Done)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactToResponse(contact))
}

// DeleteContact handles DELETE /contacts/{id} requests
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contactID(w, r)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchContacts handles GET /contacts/search/ requests
func (h *ContactHandler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	filter := store.ContactFilter{
		FirstName: r.URL.Query().Get("first_name"),
		LastName:  r.URL.Query().Get("last_name"),
		Email:     r.URL.Query().Get("email"),
	}

	contacts, err := h.contactService.SearchContacts(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactsToResponse(contacts))
}

// UpcomingBirthdays handles GET /contacts/upcoming_birthdays/ requests
func (h *ContactHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.UpcomingBirthdays(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contactsToResponse(contacts))
}

// contactID extracts and parses the {id} URL parameter, responding with a
// 400 on malformed IDs.
func (h *ContactHandler) contactID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid contact ID")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter,
// responding with a 400 on malformed or negative values.
func (h *ContactHandler) queryInt(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	def int,
) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid "+name+": expected a non-negative integer")
		return 0, false
	}
	return value, true
}

// contactToResponse converts a domain.Contact to a ContactResponse
func contactToResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:             contact.ID.String(),
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Birthday:       contact.Birthday.String(),
		AdditionalInfo: contact.AdditionalInfo,
		Done:           contact.Done,
		CreatedAt:      contact.CreatedAt,
		UpdatedAt:      contact.UpdatedAt,
	}
}

// contactsToResponse converts a contact slice, always returning a non-nil
// slice so empty results serialize as [] rather than null.
func contactsToResponse(contacts []*domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, contactToResponse(contact))
	}
	return responses
}
