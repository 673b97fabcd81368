package entity

import (
	"time"
)

// User is the aggregate root for the registration domain.
// DocumentID doubles as the login identifier and is immutable after creation;
// there is no password, authentication is by document alone.
type User struct {
	ID            string
	FullName      string
	DocumentID    string
	Phone         string
	Email         string
	Profession    string
	City          string
	Department    string
	AcademicLevel string
	ConsentGiven  bool
	RegisteredAt  time.Time
	LastSeenAt    time.Time
	IsActive      bool
}

// Profile is the public view of a User returned by the API.
// Phone, consent and the active flag are internal bookkeeping.
type Profile struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	DocumentID    string    `json:"documentId"`
	Profession    string    `json:"profession"`
	City          string    `json:"city"`
	Department    string    `json:"department"`
	AcademicLevel string    `json:"academicLevel"`
	RegisteredAt  time.Time `json:"registeredAt"`
	LastSeenAt    time.Time `json:"lastSeenAt"`
}

// ToProfile projects the user onto its public view.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:            u.ID,
		FullName:      u.FullName,
		DocumentID:    u.DocumentID,
		Profession:    u.Profession,
		City:          u.City,
		Department:    u.Department,
		AcademicLevel: u.AcademicLevel,
		RegisteredAt:  u.RegisteredAt,
		LastSeenAt:    u.LastSeenAt,
	}
}
