// Package uuid wraps google/uuid so that IDs bind from URI and query parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID.
func Parse(s string) (UUID, error) {
	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, err
	}

	return UUID{parsed}, nil
}

// UnmarshalParam is used by gin for binding of uri and form parameters.
// An empty parameter binds to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

// Ptr returns a pointer to the wrapped UUID or nil for Nil.
//
// Query filters use it for optional foreign keys.
func (u UUID) Ptr() *google_uuid.UUID {
	if u.UUID == google_uuid.Nil {
		return nil
	}

	id := u.UUID
	return &id
}
