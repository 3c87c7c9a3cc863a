// Package validation holds the declarative field rules for person
// records. Full validation covers create payloads, partial validation
// covers edit patches where only the submitted fields are checked.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"peopledex/internal/models"
)

// FieldErrors maps a field name (json form) to its validation message.
// A nil map means the input is valid.
type FieldErrors map[string]string

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report errors under the json field names the clients submit.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Exactly 10 ASCII digits. The builtin "numeric" tag also accepts
	// signs and decimal points, so a custom rule is needed.
	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// ValidateForm runs full validation over a create payload. Name and
// phone number are required; email and location are optional.
func ValidateForm(form *models.PersonForm) FieldErrors {
	f := *form
	f.Email = presentOnly(f.Email)
	f.Location = presentOnly(f.Location)
	return check(&f)
}

// ValidatePatch runs partial validation over an edit payload. Only
// fields present in the patch are checked.
func ValidatePatch(patch *models.PersonPatch) FieldErrors {
	p := *patch
	p.Email = presentOnly(p.Email)
	p.Location = presentOnly(p.Location)
	return check(&p)
}

// presentOnly drops an empty optional value before validation. The
// validator's omitempty tag only skips nil pointers, but "" means
// absent here: it must pass validation and still clear the column on
// write, so the copy is normalized rather than the caller's payload.
func presentOnly(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}

func check(v interface{}) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return "name must be at least " + fe.Param() + " characters long"
	case "email":
		return "invalid email address"
	case "phone":
		return "phone number must be 10 digits long"
	default:
		return fe.Field() + " is invalid"
	}
}
