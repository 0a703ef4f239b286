// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DoubleSided selects the duplex mode of a print job.
// The numeric values are part of the wire format consumed by printer agents.
type DoubleSided int

const (
	// DoubleSidedNone prints on one side of the sheet.
	DoubleSidedNone DoubleSided = 0

	// DoubleSidedLongEdge prints on both sides, flipping on the long edge
	// (portrait binding).
	DoubleSidedLongEdge DoubleSided = 1

	// DoubleSidedShortEdge prints on both sides, flipping on the short edge
	// (landscape binding).
	DoubleSidedShortEdge DoubleSided = 2
)

var doubleSidedNames = map[DoubleSided]string{
	DoubleSidedNone:      "none",
	DoubleSidedLongEdge:  "long_edge",
	DoubleSidedShortEdge: "short_edge",
}

// Valid reports whether d is one of the declared duplex modes.
func (d DoubleSided) Valid() bool {
	_, ok := doubleSidedNames[d]
	return ok
}

func (d DoubleSided) String() string {
	if name, ok := doubleSidedNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DoubleSided(%d)", int(d))
}

// ParseDoubleSided accepts either the numeric form ("0", "1", "2") or the
// symbolic name ("none", "long_edge", "short_edge").
func ParseDoubleSided(s string) (DoubleSided, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "0", "none", "false":
		return DoubleSidedNone, nil
	case "1", "long_edge", "long", "true":
		return DoubleSidedLongEdge, nil
	case "2", "short_edge", "short":
		return DoubleSidedShortEdge, nil
	}
	return DoubleSidedNone, fmt.Errorf("unknown double_sided mode %q", s)
}

// MarshalJSON encodes the mode as its integer value.
func (d DoubleSided) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(d))
}

// UnmarshalJSON accepts the integer or the symbolic name.
func (d *DoubleSided) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		mode := DoubleSided(n)
		if !mode.Valid() {
			return fmt.Errorf("unknown double_sided mode %d", n)
		}
		*d = mode
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("double_sided must be a number or a string: %w", err)
	}
	mode, err := ParseDoubleSided(s)
	if err != nil {
		return err
	}
	*d = mode
	return nil
}

// PrintSettings are the options a user picks for a job.
type PrintSettings struct {
	// Copies is the number of copies, at least 1.
	Copies int `json:"copies"`

	// DoubleSided is the duplex mode.
	DoubleSided DoubleSided `json:"double_sided"`

	// Color selects color output; false prints greyscale.
	Color bool `json:"color"`
}

// DefaultPrintSettings returns one single-sided color copy.
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{Copies: 1, DoubleSided: DoubleSidedNone, Color: true}
}

// Document is a queued print job. At most one Document is pending per
// printer at any time.
type Document struct {
	// Username and UserID identify the submitter.
	Username string `json:"username"`
	UserID   string `json:"user_id"`

	// Name is the sanitized original file name.
	Name string `json:"doc_name"`

	// Extension is the file extension without the leading dot.
	Extension string `json:"ext"`

	// DocID is generated on submit and keys the blob.
	DocID string `json:"doc_id"`

	Settings PrintSettings `json:"settings"`

	// Progress is the agent-reported completion in [0,1].
	Progress float64 `json:"progress"`

	// PrinterID is the slot the document is queued on.
	PrinterID string `json:"printer_id,omitempty"`

	// Size is the blob length in bytes.
	Size int64 `json:"size,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
}

// BlobName returns the storage key of the document content: {doc_id}.{ext}.
func (d Document) BlobName() string {
	return BlobName(d.DocID, d.Extension)
}

// BlobName builds the storage key for a document id and extension.
func BlobName(docID, ext string) string {
	if ext == "" {
		return docID
	}
	return docID + "." + ext
}

// TableName returns the name of the slot table.
func (d Document) TableName() string {
	return "printer_slots"
}
