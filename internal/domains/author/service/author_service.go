package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/repository"
	"library-api/internal/shared/apperr"
)

type authorService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

// NewAuthorService creates the author service. now defaults to time.Now.
func NewAuthorService(repo repository.RepositoryInterface, now func() time.Time) ServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &authorService{
		repo: repo,
		now:  now,
	}
}

func (s *authorService) GetAll(ctx context.Context) ([]model.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Search matches name as a case-sensitive substring. The query is used as given.
func (s *authorService) Search(ctx context.Context, name string) ([]model.Author, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.ErrEmptyQuery
	}
	return s.repo.FindByName(ctx, name)
}

func (s *authorService) GetByNamePrefix(ctx context.Context, prefix string) ([]model.Author, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, apperr.ErrEmptyQuery.Newf("prefix must not be empty")
	}
	return s.repo.FindByNameStartsWith(ctx, prefix)
}

func (s *authorService) GetWithBookCount(ctx context.Context) ([]model.AuthorWithBookCount, error) {
	return s.repo.GetWithBookCount(ctx)
}

// Create validates req and stores a new author. Any id in req is ignored.
func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	a, err := req.ToEntity()
	if err != nil {
		return nil, err
	}

	if err := model.ValidateAuthor(a, s.now()); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", created.ID).Str("name", created.Name).Msg("Author created")
	return created, nil
}

// Update replaces name and date of birth. req.ID must equal id; validation
// runs before the existence check.
func (s *authorService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if req.ID != id {
		return nil, apperr.ErrIDMismatch
	}

	a, err := req.ToEntity()
	if err != nil {
		return nil, err
	}

	if err := model.ValidateAuthor(a, s.now()); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, a)
}

// Delete removes an author that has no books.
func (s *authorService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrAuthorHasBooks.Newf("cannot delete author with id %d: author has %d book(s)", id, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("author_id", id).Msg("Author deleted")
	return nil
}
