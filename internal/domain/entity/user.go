// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the local account record for an externally-authenticated person.
// Identity verification lives entirely in the external provider; this row only
// carries the profile fields the provider does not hold. The ExternalUID is the
// join key between the two systems and never changes after creation.
type User struct {
	ID                uuid.UUID  // Locally-generated surrogate identifier, primary key.
	ExternalUID       string     // Opaque identifier issued by the identity provider; unique, immutable.
	Email             string     // The user's contact email. Unique across accounts.
	Name              string     // Display name collected during registration.
	Birthdate         *time.Time // Optional date of birth. Nil when never provided.
	Occupation        *string    // Optional free-form occupation. Nil when never provided.
	ProfilePictureURL *string    // Optional URL into the object store. Nil when no picture was uploaded.
	CreatedAt         time.Time  // Timestamp of when this account was created.
	UpdatedAt         time.Time  // Timestamp of the last modification to this account.
}

// HasProfile reports whether the account carries more than the minimal
// placeholder created by the find-or-create flow.
func (u *User) HasProfile() bool {
	return u.Email != "" && u.Name != ""
}
