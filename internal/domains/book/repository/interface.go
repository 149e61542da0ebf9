package repository

import (
	"context"

	"library-api/internal/domains/book/model"
)

// RepositoryInterface is the storage contract for books.
// Reads fill in Book.Author. Lists are ordered by id and never nil.
type RepositoryInterface interface {
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]model.Book, error)
	// GetPublishedAfter returns books with published_year strictly greater than year.
	GetPublishedAfter(ctx context.Context, year int) ([]model.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]model.Book, error)

	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)
}
