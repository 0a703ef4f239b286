// Package utils provides helpers shared by the server, the printer agent
// and the CLI: context keys, JWT handling, password hashing, HMAC
// signatures, JSON response writing and file name sanitization.
package utils

import (
	"context"

	"github.com/printzz/printzz/models"
)

// contextKey is a private type for context keys so values set here never
// collide with string keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user_id.
var UserIDCtxKey = contextKey("userID")

// IdentityCtxKey stores the resolved (user_id, username) pair.
var IdentityCtxKey = contextKey("identity")

// GetUserIDFromContext returns the user_id put into ctx by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithIdentity returns a copy of ctx carrying the user's identity.
func WithIdentity(ctx context.Context, user models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, user.UserID)
	return context.WithValue(ctx, IdentityCtxKey, user.Identity())
}

// GetIdentityFromContext returns the identity put into ctx by WithIdentity.
func GetIdentityFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(IdentityCtxKey).(models.User)
	return user, ok && user.UserID != ""
}
