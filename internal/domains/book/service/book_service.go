package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	authorModel "library-api/internal/domains/author/model"
	authorRepository "library-api/internal/domains/author/repository"
	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
	"library-api/internal/shared/apperr"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors authorRepository.RepositoryInterface
	now     func() time.Time
}

// NewBookService creates the book service. Authors are looked up through
// authors to enforce the reference and birth-year rules.
func NewBookService(repo repository.RepositoryInterface, authors authorRepository.RepositoryInterface, now func() time.Time) ServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &bookService{
		repo:    repo,
		authors: authors,
		now:     now,
	}
}

func (s *bookService) GetAll(ctx context.Context) ([]model.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByAuthor lists the books of an existing author.
func (s *bookService) GetByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.AuthorNotFound(authorID)
	}
	return s.repo.GetByAuthorID(ctx, authorID)
}

func (s *bookService) GetPublishedAfter(ctx context.Context, year int) ([]model.Book, error) {
	return s.repo.GetPublishedAfter(ctx, year)
}

func (s *bookService) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.ErrEmptyQuery
	}
	return s.repo.SearchByTitle(ctx, title)
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	b := req.ToEntity()
	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("book_id", created.ID).Int64("author_id", created.AuthorID).Msg("Book created")
	return created, nil
}

// Update replaces title, year and author. req.ID must equal id.
func (s *bookService) Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error) {
	if req.ID != id {
		return nil, apperr.ErrIDMismatch
	}

	b := req.ToEntity()
	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, b)
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("book_id", id).Msg("Book deleted")
	return nil
}

// validate runs the field rules, then checks the referenced author exists
// and was born no later than the publication year.
func (s *bookService) validate(ctx context.Context, b *model.Book) error {
	if err := model.ValidateBook(b, s.now()); err != nil {
		return err
	}

	author, err := s.authors.GetByID(ctx, b.AuthorID)
	if errors.Is(err, authorModel.ErrAuthorNotFound) {
		return model.AuthorMissing(b.AuthorID)
	}
	if err != nil {
		return err
	}

	if year, ok := author.BirthYear(); ok && b.PublishedYear < year {
		return model.BeforeBirth(year)
	}
	return nil
}
