package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID identifies every stored entity (users, camps, registrations, payments,
// reviews). It is the canonical string form of a UUID so the same value can
// be used as a Mongo `_id` and as a MySQL CHAR(36) primary key.
type ID string

// NewID returns a freshly generated random identifier.
func NewID() ID { return ID(uuid.NewString()) }

// ParseID validates raw and returns it in canonical form. It is the single
// place where identifiers coming from a path, query or body are checked.
func ParseID(raw string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return ID(u.String()), nil
}

// ParseIDs parses every element of raw and fails on the first invalid one.
func ParseIDs(raw []string) ([]ID, error) {
	out := make([]ID, 0, len(raw))
	for _, r := range raw {
		id, err := ParseID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (id ID) String() string { return string(id) }

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool { return id == "" }

// Value implements driver.Valuer so IDs can be passed straight to database/sql.
func (id ID) Value() (driver.Value, error) { return string(id), nil }

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*id = ID(v)
	case []byte:
		*id = ID(string(v))
	case nil:
		*id = ""
	default:
		return fmt.Errorf("model.ID: cannot scan %T", src)
	}
	return nil
}
