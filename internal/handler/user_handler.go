package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/metrics"
	"github.com/prn-tf/roster/internal/service"
)

// UserHandler maps the /api/users resource onto the user service.
type UserHandler struct {
	users   *service.UserService
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewUserHandler creates a new UserHandler. metrics may be nil.
func NewUserHandler(users *service.UserService, m *metrics.Metrics, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		metrics: m,
		logger:  logger.With().Str("handler", "users").Logger(),
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SetUserCount(len(users))
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /api/users. The request body is decoded into the
// three client-settable fields; anything else in the body, including a
// client-supplied id, is dropped on decode.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields domain.UserFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.users.Create(r.Context(), fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.refreshUserCount(r.Context())
	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}. The body is a partial field set;
// an id key in the body has no representation in the patch and is
// discarded, so the identifier cannot be overwritten.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.refreshUserCount(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// refreshUserCount re-reads the collection size into the users gauge so
// it does not go stale between listings.
func (h *UserHandler) refreshUserCount(ctx context.Context) {
	if h.metrics == nil {
		return
	}
	users, err := h.users.List(ctx)
	if err != nil {
		return
	}
	h.metrics.SetUserCount(len(users))
}

// writeError maps service errors to HTTP status codes. Not-found becomes
// 404, validation failures become 400, and anything else is a generic
// 500 so store details never leak to clients.
func (h *UserHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
	case errors.Is(err, service.ErrInvalidEmail):
		writeMessage(w, http.StatusBadRequest, msgEmailInvalid)
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, msgEmailTaken)
	default:
		h.logger.Error().Err(err).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
	}
}
