package repositories

import (
	"context"
	"database/sql"

	"peopledex/internal/models"
)

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = "id, name, phone_number, email, location, created_at, updated_at"

// Create inserts a new person. Timestamps are assigned by the database.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO people (
			id, name, phone_number, email, location
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		person.ID, person.Name, person.PhoneNumber, person.Email, person.Location,
	)
	return err
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	return scanPerson(r.db.QueryRowContext(ctx, query, id))
}

// SearchByName retrieves all people whose name contains the query as a
// case-insensitive substring, ordered by name.
func (r *PersonRepository) SearchByName(ctx context.Context, name string) ([]*models.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE name LIKE ?
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

// GetAll retrieves the whole directory ordered by name.
func (r *PersonRepository) GetAll(ctx context.Context) ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

// ExistsOtherWithEmail reports whether a person other than excludeID
// currently holds the given email.
func (r *PersonRepository) ExistsOtherWithEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM people WHERE email = ? AND id != ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&count)
	return count > 0, err
}

// UpdateFields applies the non-nil fields of the patch and bumps
// updated_at. It returns the number of rows affected so the caller can
// detect a missing person.
func (r *PersonRepository) UpdateFields(ctx context.Context, id string, patch *models.PersonPatch) (int64, error) {
	query := "UPDATE people SET "
	var args []interface{}

	if patch.Name != nil {
		query += "name = ?, "
		args = append(args, *patch.Name)
	}
	if patch.PhoneNumber != nil {
		query += "phone_number = ?, "
		args = append(args, *patch.PhoneNumber)
	}
	if patch.Email != nil {
		query += "email = ?, "
		args = append(args, nullable(patch.Email))
	}
	if patch.Location != nil {
		query += "location = ?, "
		args = append(args, nullable(patch.Location))
	}

	query += "updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row scanner) (*models.Person, error) {
	person := &models.Person{}
	var email, location sql.NullString

	err := row.Scan(
		&person.ID, &person.Name, &person.PhoneNumber,
		&email, &location, &person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		person.Email = &email.String
	}
	if location.Valid {
		person.Location = &location.String
	}
	return person, nil
}

// nullable maps an empty string to NULL so clearing a field and never
// having set it look the same in the database.
func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
