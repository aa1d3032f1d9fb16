package profile

import (
	"github.com/google/uuid"
)

// EntryID identifies an experience or education entry within its list. Two ids are
// equal when their canonical string forms are equal.
type EntryID uuid.UUID

func NewEntryID() EntryID {
	return EntryID(uuid.New())
}

// ParseEntryID accepts any textual uuid form and normalizes it.
func ParseEntryID(s string) (EntryID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EntryID{}, err
	}
	return EntryID(u), nil
}

func (id EntryID) String() string {
	return uuid.UUID(id).String()
}

// Matches reports whether token denotes this id. Malformed tokens match nothing.
func (id EntryID) Matches(token string) bool {
	other, err := ParseEntryID(token)
	if err != nil {
		return false
	}
	return id.String() == other.String()
}

func (id EntryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *EntryID) UnmarshalText(b []byte) error {
	parsed, err := ParseEntryID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type entry interface {
	entryID() EntryID
}

func allocateID[T entry](existing []T) EntryID {
	for {
		id := NewEntryID()
		if !containsID(existing, id) {
			return id
		}
	}
}

func containsID[T entry](list []T, id EntryID) bool {
	for _, e := range list {
		if e.entryID() == id {
			return true
		}
	}
	return false
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func removeByID[T entry](list []T, token string) ([]T, bool) {
	out := make([]T, 0, len(list))
	removed := false
	for _, e := range list {
		if e.entryID().Matches(token) {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out, removed
}
