package repository

import (
	"errors"
	"time"

	"github.com/elprofecharles/registration-api/internal/domain/entity"
)

// Storage-level sentinels. The postgres implementation maps unique-index
// violations onto the duplicate errors so concurrent registrations with the
// same identifier fail the same way the pre-insert check does.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateDocumentID = errors.New("document already registered")
	ErrDuplicateEmail      = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByDocumentID(documentID string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// FindByDocumentOrEmail returns the first record matching either value,
	// active or not. Used by the registration uniqueness pre-check.
	FindByDocumentOrEmail(documentID, email string) (*entity.User, error)
	Update(u *entity.User) error
	TouchLastSeen(id string) error
	Deactivate(id string) error
	CountActive() (int64, error)
	CountRegisteredSince(t time.Time) (int64, error)
}
