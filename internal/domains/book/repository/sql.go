package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/apperr"
)

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

const selectBooks = `
    SELECT b.id, b.title, b.published_year, b.author_id, a.name, b.created_at, b.updated_at
    FROM books b
    JOIN authors a ON a.id = b.author_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (model.Book, error) {
	var (
		b          model.Book
		authorName string
	)
	err := row.Scan(&b.ID, &b.Title, &b.PublishedYear, &b.AuthorID, &authorName, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Book{}, err
	}
	b.Author = &model.AuthorSummary{ID: b.AuthorID, Name: authorName}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func (r *sqlRepository) list(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query books")
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, apperr.Internal(err, "failed to scan book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate books")
	}

	return books, nil
}

func (r *sqlRepository) GetAll(ctx context.Context) ([]model.Book, error) {
	return r.list(ctx, selectBooks+` ORDER BY b.id`)
}

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBooks+` WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFound(id)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to get book %d", id)
	}
	return &b, nil
}

func (r *sqlRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]model.Book, error) {
	return r.list(ctx, selectBooks+` WHERE b.author_id = $1 ORDER BY b.id`, authorID)
}

func (r *sqlRepository) GetPublishedAfter(ctx context.Context, year int) ([]model.Book, error) {
	return r.list(ctx, selectBooks+` WHERE b.published_year > $1 ORDER BY b.id`, year)
}

func (r *sqlRepository) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return r.list(ctx, selectBooks+` WHERE `+r.driver.Contains("b.title", "$1")+` ORDER BY b.id`, title)
}

// Create inserts b. A dangling author reference is reported as AUTHOR_MISSING.
func (r *sqlRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	query := `
        INSERT INTO books (title, published_year, author_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var id int64
	err := r.db.QueryRowContext(ctx, query, b.Title, b.PublishedYear, b.AuthorID, now, now).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.AuthorMissing(b.AuthorID)
		}
		return nil, apperr.Internal(err, "failed to create book")
	}

	return r.GetByID(ctx, id)
}

func (r *sqlRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET title = $1, published_year = $2, author_id = $3, updated_at = $4
        WHERE id = $5
    `

	now := time.Now().UTC().Truncate(time.Microsecond)
	result, err := r.db.ExecContext(ctx, query, b.Title, b.PublishedYear, b.AuthorID, now, b.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.AuthorMissing(b.AuthorID)
		}
		return nil, apperr.Internal(err, "failed to update book %d", b.ID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperr.Internal(err, "failed to update book %d", b.ID)
	}
	if affected == 0 {
		return nil, model.NotFound(b.ID)
	}

	return r.GetByID(ctx, b.ID)
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err, "failed to delete book %d", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal(err, "failed to delete book %d", id)
	}
	if affected == 0 {
		return model.NotFound(id)
	}
	return nil
}

func (r *sqlRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperr.Internal(err, "failed to check book %d", id)
	}
	return exists, nil
}
