package service

import (
	"context"

	"library-api/internal/domains/book/model"
)

// ServiceInterface holds the book use cases.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
	GetPublishedAfter(ctx context.Context, year int) ([]model.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]model.Book, error)

	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}
