package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/store"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/internal/validators"
	"github.com/printzz/printzz/models"
)

// authService implements AuthService on top of a UserRepository.
// Passwords are stored as PBKDF2-HMAC-SHA256 hashes.
type authService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	idGenerator    IDGenerator

	passwordIterations int

	// dummyHash is verified against when a username is unknown so both
	// failure paths cost one key derivation.
	dummyHash string

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the App config section.
func NewAuthService(userRepository store.UserRepository, idGenerator IDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	iterations := cfg.PasswordIterations
	if iterations < 1 {
		iterations = config.DefaultPasswordIterations
	}

	return &authService{
		userRepository:     userRepository,
		validator:          validators.NewCredentialsValidator(),
		idGenerator:        idGenerator,
		passwordIterations: iterations,
		dummyHash:          utils.DummyPasswordHash(iterations),
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration.Std(),
		logger:             logger,
	}
}

// RegisterUser validates the pair, hashes the password and stores both
// records. A taken username yields ErrUserAlreadyExists and leaves the
// existing record untouched.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("username", user.Username).Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(user.Password, a.passwordIterations)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	newUser := models.User{
		UserID:       a.idGenerator.Generate(),
		Username:     user.Username,
		PasswordHash: hash,
	}

	err = a.userRepository.CreateUser(ctx, newUser)
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		log.Info().Str("username", user.Username).Msg("username already exists")
		return models.User{}, ErrUserAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	log.Info().Str("user_id", newUser.UserID).Str("username", newUser.Username).Msg("user registered")
	return newUser.Identity(), nil
}

// Login checks the password against the stored hash.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	found, err := a.userRepository.FindUserByUsername(ctx, user.Username)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		_, _ = utils.VerifyPassword(user.Password, a.dummyHash)
		log.Info().Str("username", user.Username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	case err != nil:
		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	ok, err := utils.VerifyPassword(user.Password, found.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", found.UserID).Msg("stored password hash is malformed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if !ok {
		log.Info().Str("username", user.Username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}

	return found.Identity(), nil
}

func (a *authService) ResolveUser(ctx context.Context, userID string) (models.User, error) {
	found, err := a.userRepository.FindUserByID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrUserNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ResolveUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return found, nil
}

// CreateToken issues a JWT whose subject is the user_id.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken normalizes every validation failure to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
