// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltSize = 16
	passwordKeySize  = sha256.Size
	passwordScheme   = "pbkdf2-sha256"
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// ab64 is the "adapted base64" alphabet of the modular crypt format:
// standard base64 with '.' in place of '+' and no padding.
var ab64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./").WithPadding(base64.NoPadding)

// HashPassword derives a salted PBKDF2-HMAC-SHA256 hash and encodes it as
//
//	$pbkdf2-sha256$<rounds>$<salt>$<checksum>
func HashPassword(password string, iterations int) (string, error) {
	if iterations < 1 {
		return "", fmt.Errorf("invalid iteration count %d", iterations)
	}

	salt := make([]byte, passwordSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	return encodePasswordHash(password, salt, iterations), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password, encoded string) (bool, error) {
	iterations, salt, checksum, err := decodePasswordHash(encoded)
	if err != nil {
		return false, err
	}

	derived := pbkdf2.Key([]byte(password), salt, iterations, len(checksum), sha256.New)
	return subtle.ConstantTimeCompare(derived, checksum) == 1, nil
}

// DummyPasswordHash returns a well-formed hash of a random password. Verifying
// against it costs the same as a real check and never succeeds in practice.
func DummyPasswordHash(iterations int) string {
	salt := make([]byte, passwordSaltSize)
	_, _ = rand.Read(salt)
	return encodePasswordHash(string(salt), salt, max(iterations, 1))
}

func encodePasswordHash(password string, salt []byte, iterations int) string {
	checksum := pbkdf2.Key([]byte(password), salt, iterations, passwordKeySize, sha256.New)
	return fmt.Sprintf("$%s$%d$%s$%s", passwordScheme, iterations, ab64.EncodeToString(salt), ab64.EncodeToString(checksum))
}

func decodePasswordHash(encoded string) (int, []byte, []byte, error) {
	// "", scheme, rounds, salt, checksum
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != passwordScheme {
		return 0, nil, nil, ErrMalformedHash
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations < 1 {
		return 0, nil, nil, fmt.Errorf("%w: bad rounds", ErrMalformedHash)
	}

	salt, err := ab64.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: bad salt: %w", ErrMalformedHash, err)
	}

	checksum, err := ab64.DecodeString(parts[4])
	if err != nil || len(checksum) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: bad checksum", ErrMalformedHash)
	}

	return iterations, salt, checksum, nil
}
