package repository

import (
	"context"

	"library-api/internal/domains/author/model"
)

// RepositoryInterface is the storage contract for authors.
// List methods return an empty slice when nothing matches and are ordered by id.
// Missing ids yield model.ErrAuthorNotFound.
type RepositoryInterface interface {
	GetAll(ctx context.Context) ([]model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	FindByName(ctx context.Context, name string) ([]model.Author, error)
	FindByNameStartsWith(ctx context.Context, prefix string) ([]model.Author, error)
	GetWithBookCount(ctx context.Context) ([]model.AuthorWithBookCount, error)

	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)
	CountBooks(ctx context.Context, authorID int64) (int, error)
}
