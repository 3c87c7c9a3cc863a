package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"peopledex/internal/models"
)

func newMockedRepo(t *testing.T) (*PersonRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %s", err)
	}
	return NewPersonRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestUpdateFieldsAppliesOnlyPresentFields(t *testing.T) {
	repo, mock, db := newMockedRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE people SET name = \\?, phone_number = \\?, updated_at = CURRENT_TIMESTAMP WHERE id = \\?").
		WithArgs("Grace Hopper", "5550001111", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateFields(context.Background(), "p1", &models.PersonPatch{
		Name:        strPtr("Grace Hopper"),
		PhoneNumber: strPtr("5550001111"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFieldsClearsEmptyOptionalFields(t *testing.T) {
	repo, mock, db := newMockedRepo(t)
	defer db.Close()

	// Submitting "" for an optional field stores NULL, so cleared and
	// never-set look the same.
	mock.ExpectExec("UPDATE people SET email = \\?, location = \\?, updated_at = CURRENT_TIMESTAMP WHERE id = \\?").
		WithArgs(nil, nil, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateFields(context.Background(), "p1", &models.PersonPatch{
		Email:    strPtr(""),
		Location: strPtr(""),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsOtherWithEmail(t *testing.T) {
	repo, mock, db := newMockedRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM people WHERE email = \\? AND id != \\?").
		WithArgs("ada@x.com", "p2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsOtherWithEmail(context.Background(), "ada@x.com", "p2")

	assert.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByName(t *testing.T) {
	repo, mock, db := newMockedRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "phone_number", "email", "location", "created_at", "updated_at"}).
		AddRow("p1", "Ada Lovelace", "5551234567", "ada@x.com", nil, now, now).
		AddRow("p2", "Adam Smith", "5550001111", nil, "Edinburgh", now, now)

	mock.ExpectQuery("SELECT (.+) FROM people WHERE name LIKE").
		WithArgs("%ada%").
		WillReturnRows(rows)

	people, err := repo.SearchByName(context.Background(), "ada")

	assert.NoError(t, err)
	if assert.Len(t, people, 2) {
		assert.Equal(t, "Ada Lovelace", people[0].Name)
		if assert.NotNil(t, people[0].Email) {
			assert.Equal(t, "ada@x.com", *people[0].Email)
		}
		assert.Nil(t, people[0].Location)
		assert.Nil(t, people[1].Email)
		if assert.NotNil(t, people[1].Location) {
			assert.Equal(t, "Edinburgh", *people[1].Location)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoresNilOptionalFieldsAsNull(t *testing.T) {
	repo, mock, db := newMockedRepo(t)
	defer db.Close()

	person := models.NewPerson(&models.PersonForm{
		Name:        "Ada Lovelace",
		PhoneNumber: "5551234567",
		Email:       strPtr(""),
	})

	mock.ExpectExec("INSERT INTO people").
		WithArgs(person.ID, "Ada Lovelace", "5551234567", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), person))
	assert.NoError(t, mock.ExpectationsWereMet())
}
