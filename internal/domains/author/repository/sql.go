package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"library-api/internal/domains/author/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/apperr"
	pkgdb "library-api/pkg/database"
)

// sqlRepository implements RepositoryInterface over database/sql.
// The same queries run on sqlite and postgres; only the string predicates
// differ and come from the driver.
type sqlRepository struct {
	db     *sql.DB
	driver database.Driver
}

func NewSQLRepository(db *database.DB) RepositoryInterface {
	return &sqlRepository{
		db:     db.SQL,
		driver: db.Driver,
	}
}

const authorColumns = `id, name, date_of_birth, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (model.Author, error) {
	var (
		a   model.Author
		dob sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.Name, &dob, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return model.Author{}, err
	}
	if dob.Valid {
		d := dob.Time.UTC()
		a.DateOfBirth = &d
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *sqlRepository) list(ctx context.Context, query string, args ...any) ([]model.Author, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query authors")
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, apperr.Internal(err, "failed to scan author")
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate authors")
	}

	return authors, nil
}

func (r *sqlRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	return r.list(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY id`)
}

// GetByID loads the author together with its books in one transaction.
func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return pkgdb.WithTransactionResult(ctx, r.db, nil, func(tx *sql.Tx) (*model.Author, error) {
		query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

		a, err := scanAuthor(tx.QueryRowContext(ctx, query, id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFound(id)
		}
		if err != nil {
			return nil, apperr.Internal(err, "failed to get author %d", id)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, title, published_year FROM books WHERE author_id = $1 ORDER BY id`, id)
		if err != nil {
			return nil, apperr.Internal(err, "failed to query books of author %d", id)
		}
		defer rows.Close()

		a.Books = make([]model.BookSummary, 0)
		for rows.Next() {
			var b model.BookSummary
			if err := rows.Scan(&b.ID, &b.Title, &b.PublishedYear); err != nil {
				return nil, apperr.Internal(err, "failed to scan book")
			}
			a.Books = append(a.Books, b)
		}
		if err := rows.Err(); err != nil {
			return nil, apperr.Internal(err, "failed to iterate books")
		}

		return &a, nil
	})
}

func (r *sqlRepository) FindByName(ctx context.Context, name string) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE ` +
		r.driver.Contains("name", "$1") + ` ORDER BY id`
	return r.list(ctx, query, name)
}

func (r *sqlRepository) FindByNameStartsWith(ctx context.Context, prefix string) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE ` +
		r.driver.HasPrefix("name", "$1") + ` ORDER BY id`
	return r.list(ctx, query, prefix)
}

func (r *sqlRepository) GetWithBookCount(ctx context.Context) ([]model.AuthorWithBookCount, error) {
	query := `
        SELECT a.id, a.name, a.date_of_birth, COUNT(b.id)
        FROM authors a
        LEFT JOIN books b ON b.author_id = a.id
        GROUP BY a.id, a.name, a.date_of_birth
        ORDER BY a.id
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query author book counts")
	}
	defer rows.Close()

	result := make([]model.AuthorWithBookCount, 0)
	for rows.Next() {
		var (
			a   model.AuthorWithBookCount
			dob sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Name, &dob, &a.BookCount); err != nil {
			return nil, apperr.Internal(err, "failed to scan author book count")
		}
		if dob.Valid {
			d := dob.Time.UTC()
			a.DateOfBirth = &d
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate author book counts")
	}

	return result, nil
}

// Create inserts a and returns the stored row. a.ID is ignored.
func (r *sqlRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	now := storeNow()

	query := `
        INSERT INTO authors (name, date_of_birth, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	created := a.Clone()
	created.Books = nil
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := r.db.QueryRowContext(ctx, query, a.Name, a.DateOfBirth, now, now).Scan(&created.ID); err != nil {
		return nil, apperr.Internal(err, "failed to create author")
	}

	return &created, nil
}

// Update replaces name and date of birth of the author with a.ID.
func (r *sqlRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, date_of_birth = $2, updated_at = $3
        WHERE id = $4
    `

	result, err := r.db.ExecContext(ctx, query, a.Name, a.DateOfBirth, storeNow(), a.ID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to update author %d", a.ID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperr.Internal(err, "failed to update author %d", a.ID)
	}
	if affected == 0 {
		return nil, model.NotFound(a.ID)
	}

	return r.GetByID(ctx, a.ID)
}

// Delete removes the author. The schema restricts deleting an author that
// still has books; that violation surfaces as ErrAuthorHasBooks.
func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.HasBooks(id)
		}
		return apperr.Internal(err, "failed to delete author %d", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal(err, "failed to delete author %d", id)
	}
	if affected == 0 {
		return model.NotFound(id)
	}

	return nil
}

func (r *sqlRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperr.Internal(err, "failed to check author %d", id)
	}
	return exists, nil
}

func (r *sqlRepository) CountBooks(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, apperr.Internal(err, "failed to count books of author %d", authorID)
	}
	return count, nil
}

// storeNow is truncated to microseconds, the resolution of postgres timestamps.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
