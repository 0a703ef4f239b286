package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.register")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	log.Debug().Str("user_id", registeredUser.UserID).Msg("user registered")
	h.respondWithToken(w, r, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.login")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")
	h.respondWithToken(w, r, foundUser, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.me")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "*Handler.respondWithToken")
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, user.Identity(), status)
}
