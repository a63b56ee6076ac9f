// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

/*
Package uuid provides time-ordered unique identifiers for the application.

It wraps the standard UUID library to specifically generate Version 7 values.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Opaque: Safe to hand to browsers as session cookie values.
  - Compact: 128-bit storage, compatible with standard 'uuid' types.

Session identifiers and request correlation IDs both use this type.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether the value parses as any UUID version.
//
// Used to reject tampered session cookies before a Redis lookup happens.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
