package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a directory entry. Email and Location are optional
// and serialize as null when absent.
type Person struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       *string   `json:"email"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PersonForm is the payload for creating a person. The id and
// timestamps are assigned by the store.
type PersonForm struct {
	Name        string  `json:"name" validate:"required,min=2"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Location    *string `json:"location"`
}

// PersonPatch is a partial update. Only non-nil fields are validated
// and applied.
type PersonPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Location    *string `json:"location"`
}

// NewPerson creates a Person from a validated form with a generated UUID
func NewPerson(form *PersonForm) *Person {
	return &Person{
		ID:          uuid.New().String(),
		Name:        form.Name,
		PhoneNumber: form.PhoneNumber,
		Email:       normalize(form.Email),
		Location:    normalize(form.Location),
	}
}

// normalize maps empty strings to nil so that "" and absent mean the
// same thing past the API boundary.
func normalize(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
