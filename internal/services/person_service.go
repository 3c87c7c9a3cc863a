package services

import (
	"context"
	"database/sql"
	"errors"

	"peopledex/internal/models"
	"peopledex/internal/repositories"
	"peopledex/internal/validation"
)

// PersonService owns the two mutation paths into the people store.
// Nothing else writes to it.
type PersonService struct {
	personRepo *repositories.PersonRepository
}

func NewPersonService(personRepo *repositories.PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// Create validates the full form and inserts a new person. The store
// assigns the timestamps; the id is generated here.
func (s *PersonService) Create(ctx context.Context, form *models.PersonForm) (*models.Person, error) {
	if fields := validation.ValidateForm(form); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	person := models.NewPerson(form)
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, &StoreError{Op: "create", Err: err}
	}

	// Read back so the response carries the store-assigned timestamps.
	created, err := s.personRepo.GetByID(ctx, person.ID)
	if err != nil {
		return nil, &StoreError{Op: "create", Err: err}
	}
	return created, nil
}

// Update applies a partial patch to an existing person. When the patch
// carries a non-empty email, any other person holding that email makes
// the whole update fail before the record is touched.
func (s *PersonService) Update(ctx context.Context, id string, patch *models.PersonPatch) (*models.Person, error) {
	if patch.Email != nil && *patch.Email != "" {
		taken, err := s.personRepo.ExistsOtherWithEmail(ctx, *patch.Email, id)
		if err != nil {
			return nil, &StoreError{Op: "update", Err: err}
		}
		if taken {
			return nil, &DuplicateEmailError{Email: *patch.Email}
		}
	}

	if fields := validation.ValidatePatch(patch); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	affected, err := s.personRepo.UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, &StoreError{Op: "update", Err: err}
	}
	if affected == 0 {
		return nil, &NotFoundError{ID: id}
	}

	updated, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &StoreError{Op: "update", Err: err}
	}
	return updated, nil
}

// Get retrieves a single person by id.
func (s *PersonService) Get(ctx context.Context, id string) (*models.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	return person, nil
}
