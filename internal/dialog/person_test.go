package dialog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"peopledex/internal/models"
	"peopledex/internal/notify"
	"peopledex/internal/repositories"
	"peopledex/internal/services"
)

func newPersonService(t *testing.T) (*services.PersonService, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %s", err)
	}
	return services.NewPersonService(repositories.NewPersonRepository(db)), mock, db
}

func personRows(id, name, phone string, email interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "phone_number", "email", "location", "created_at", "updated_at"}).
		AddRow(id, name, phone, email, nil, now, now)
}

func TestAddPersonDialogFlow(t *testing.T) {
	svc, mock, db := newPersonService(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO people").
		WithArgs(sqlmock.AnyArg(), "Ada Lovelace", "5551234567", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM people WHERE id").
		WillReturnRows(personRows("p1", "Ada Lovelace", "5551234567", nil))

	notifier := notify.NewNotifier(time.Minute)
	defer notifier.Close()

	ctrl := NewAddPersonDialog(svc, notifier)
	assert.Equal(t, StateOpen, ctrl.State())
	assert.Equal(t, ModeAdd, ctrl.Mode())

	created, err := ctrl.Submit(context.Background(), &models.PersonForm{
		Name:        "Ada Lovelace",
		PhoneNumber: "5551234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, StateClosed, ctrl.State())

	current := notifier.Current()
	if assert.NotNil(t, current) {
		assert.Equal(t, "Ada Lovelace added successfully", current.Message)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPersonDialogStoreFailure(t *testing.T) {
	svc, mock, db := newPersonService(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO people").
		WillReturnError(errors.New("disk I/O error"))

	notifier := notify.NewNotifier(time.Minute)
	defer notifier.Close()

	ctrl := NewAddPersonDialog(svc, notifier)
	draft := &models.PersonForm{Name: "Ada Lovelace", PhoneNumber: "5551234567"}
	_, err := ctrl.Submit(context.Background(), draft)

	assert.Error(t, err)
	assert.Equal(t, StateOpen, ctrl.State())
	assert.Same(t, draft, ctrl.Draft())

	current := notifier.Current()
	if assert.NotNil(t, current) {
		assert.Equal(t, models.NotificationError, current.Kind)
		assert.Equal(t, "Failed to add user", current.Message)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditPersonDialogFlow(t *testing.T) {
	svc, mock, db := newPersonService(t)
	defer db.Close()

	email := "ada@x.com"
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(email, "p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE people SET").
		WithArgs("Ada Lovelace", "5551234567", email, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM people WHERE id").
		WillReturnRows(personRows("p1", "Ada Lovelace", "5551234567", email))

	notifier := notify.NewNotifier(time.Minute)
	defer notifier.Close()

	person := &models.Person{ID: "p1", Name: "Ada Lovelace", PhoneNumber: "5551234567", Email: &email}
	ctrl := NewEditPersonDialog(svc, notifier, person)
	assert.Equal(t, ModeEdit, ctrl.Mode())
	assert.Equal(t, "Ada Lovelace", ctrl.Draft().Name)

	updated, err := ctrl.Submit(context.Background(), ctrl.Draft())

	assert.NoError(t, err)
	assert.Equal(t, &email, updated.Email)
	assert.Equal(t, StateClosed, ctrl.State())

	current := notifier.Current()
	if assert.NotNil(t, current) {
		assert.Equal(t, "Ada Lovelace updated successfully", current.Message)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditPersonDialogInvalidDraftMakesNoStoreCall(t *testing.T) {
	svc, mock, db := newPersonService(t)
	defer db.Close()

	notifier := notify.NewNotifier(time.Minute)
	defer notifier.Close()

	person := &models.Person{ID: "p1", Name: "Ada Lovelace", PhoneNumber: "5551234567"}
	ctrl := NewEditPersonDialog(svc, notifier, person)

	draft := ctrl.Draft()
	draft.PhoneNumber = "123"
	_, err := ctrl.Submit(context.Background(), draft)

	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Contains(t, ctrl.FieldErrors(), "phoneNumber")
	assert.NoError(t, mock.ExpectationsWereMet())
}
