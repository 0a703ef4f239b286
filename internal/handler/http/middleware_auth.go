package http

import (
	"net/http"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
)

// auth resolves the bearer token to an identity and stores it in the
// request context. The user record is looked up on every request, so tokens
// of removed users stop working immediately.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.auth")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader, "*Handler.auth")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "*Handler.auth")
			return
		}

		user, err := h.services.AuthService.ResolveUser(ctx, token.UserID)
		if err != nil {
			writeError(w, r, err, "*Handler.auth")
			return
		}

		userLog := log.With().Str("user_id", user.UserID).Logger()
		ctx = utils.WithIdentity(userLog.WithContext(ctx), user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
