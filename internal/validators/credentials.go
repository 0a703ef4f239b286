package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/printzz/printzz/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

const (
	maxUsernameLength = 64
	maxPasswordLength = 256
)

// CredentialsValidator validates [models.User] register and login input.
type CredentialsValidator struct{}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, value any, fields ...string) error {
	var user models.User
	switch u := value.(type) {
	case models.User:
		user = u
	case *models.User:
		if u == nil {
			return fmt.Errorf("%w: nil *models.User", ErrUnsupportedType)
		}
		user = *u
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldUsername:
			if err := validateUsername(user.Username); err != nil {
				return err
			}
		case FieldPassword:
			n := utf8.RuneCountInString(user.Password)
			if n == 0 || n > maxPasswordLength {
				return ErrInvalidPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 || n > maxUsernameLength || !utf8.ValidString(username) {
		return ErrInvalidUsername
	}
	if strings.ContainsFunc(username, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) {
		return ErrInvalidUsername
	}
	return nil
}
