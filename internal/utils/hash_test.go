// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	h := hmac.New(sha256.New, []byte("printer-key"))
	h.Write([]byte("printer-1"))
	want := hex.EncodeToString(h.Sum(nil))

	got := HashString("printer-1", "printer-key")

	assert.Equal(t, want, got)
	assert.Len(t, got, 64)
	assert.NotEqual(t, got, HashString("printer-1", "other-key"))
	assert.NotEqual(t, got, HashString("printer-2", "printer-key"))
}

func TestVerifyHashString(t *testing.T) {
	sig := HashString("printer-1", "k")

	assert.True(t, VerifyHashString("printer-1", sig, "k"))
	assert.False(t, VerifyHashString("printer-2", sig, "k"))
	assert.False(t, VerifyHashString("printer-1", sig, "other"))
	assert.False(t, VerifyHashString("printer-1", "not-hex", "k"))
	assert.False(t, VerifyHashString("printer-1", "", "k"))
}
