package model

import "github.com/google/uuid"

const idLength = 36

// IsValidID reports whether id is a canonical, hyphenated UUID.
func IsValidID(id string) bool {
	if len(id) != idLength {
		return false
	}

	_, err := uuid.Parse(id)
	return err == nil
}
