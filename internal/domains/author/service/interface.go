package service

import (
	"context"

	"library-api/internal/domains/author/model"
)

// ServiceInterface holds the author use cases. Every method returns either a
// payload or an apperr-classified error.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	Search(ctx context.Context, name string) ([]model.Author, error)
	GetByNamePrefix(ctx context.Context, prefix string) ([]model.Author, error)
	GetWithBookCount(ctx context.Context) ([]model.AuthorWithBookCount, error)

	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}
