package utils

import "github.com/google/uuid"

// UUIDGenerator issues random identifiers for users and documents.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new random (v4) UUID string.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
