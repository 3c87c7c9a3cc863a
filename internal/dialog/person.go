package dialog

import (
	"context"

	"peopledex/internal/models"
	"peopledex/internal/notify"
	"peopledex/internal/services"
	"peopledex/internal/validation"
)

// PersonDialog is the add/edit dialog over the person mutation paths.
type PersonDialog = Controller[models.PersonForm, models.Person]

// NewAddPersonDialog opens an empty dialog whose submit creates a new
// person.
func NewAddPersonDialog(people *services.PersonService, notifier *notify.Notifier) *PersonDialog {
	ctrl := NewController(Config[models.PersonForm, models.Person]{
		Validate: validation.ValidateForm,
		Action: func(ctx context.Context, form *models.PersonForm) (*models.Person, error) {
			return people.Create(ctx, form)
		},
		SuccessMessage: func(p *models.Person) string {
			return p.Name + " added successfully"
		},
		ErrorMessage: "Failed to add user",
		Notifier:     notifier,
	})
	ctrl.Open(nil)
	return ctrl
}

// NewEditPersonDialog opens a dialog seeded from an existing person
// whose submit patches that person's record.
func NewEditPersonDialog(people *services.PersonService, notifier *notify.Notifier, person *models.Person) *PersonDialog {
	ctrl := NewController(Config[models.PersonForm, models.Person]{
		// The edit dialog shows the whole form, so the draft gets full
		// validation even though the service underneath applies a patch.
		Validate: validation.ValidateForm,
		Action: func(ctx context.Context, form *models.PersonForm) (*models.Person, error) {
			return people.Update(ctx, person.ID, patchFromForm(form))
		},
		SuccessMessage: func(p *models.Person) string {
			return p.Name + " updated successfully"
		},
		ErrorMessage: "Failed to update user",
		Notifier:     notifier,
	})
	ctrl.Open(formFromPerson(person))
	return ctrl
}

// formFromPerson seeds an edit draft from the stored record.
func formFromPerson(p *models.Person) *models.PersonForm {
	return &models.PersonForm{
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Email:       p.Email,
		Location:    p.Location,
	}
}

// patchFromForm turns a full edit draft into the partial update the
// mutation path expects.
func patchFromForm(f *models.PersonForm) *models.PersonPatch {
	return &models.PersonPatch{
		Name:        &f.Name,
		PhoneNumber: &f.PhoneNumber,
		Email:       f.Email,
		Location:    f.Location,
	}
}
