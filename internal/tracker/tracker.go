// Package tracker implements the game and rank entry services. Every
// operation takes the acting user explicitly; there is no ambient
// identity. Policy checks run before any mutation.
package tracker

import (
	"errors"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func New(conn *gorm.DB) *Service {
	return &Service{db: conn}
}

// isDuplicate recognizes a unique-constraint rejection from the store.
// The name pre-checks in this package race with concurrent inserts; the
// database index is the final word.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
