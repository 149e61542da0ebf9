package memory

import (
	"context"
	"strings"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/repository"
)

// AuthorRepository implements the author repository on a Store.
type AuthorRepository struct {
	store *Store
}

var _ repository.RepositoryInterface = (*AuthorRepository)(nil)

func (r *AuthorRepository) filter(match func(a *model.Author) bool) []model.Author {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Author, 0)
	for i := range s.authors {
		if match(&s.authors[i]) {
			out = append(out, s.authors[i].Clone())
		}
	}
	return out
}

func (r *AuthorRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	return r.filter(func(*model.Author) bool { return true }), nil
}

func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.authorIndex(id)
	if i < 0 {
		return nil, model.NotFound(id)
	}
	return r.withBooks(i), nil
}

// withBooks copies the author at index i with its book list. Callers hold mu.
func (r *AuthorRepository) withBooks(i int) *model.Author {
	s := r.store
	a := s.authors[i].Clone()
	a.Books = make([]model.BookSummary, 0)
	for _, b := range s.books {
		if b.AuthorID == a.ID {
			a.Books = append(a.Books, model.BookSummary{ID: b.ID, Title: b.Title, PublishedYear: b.PublishedYear})
		}
	}
	return &a
}

func (r *AuthorRepository) FindByName(ctx context.Context, name string) ([]model.Author, error) {
	return r.filter(func(a *model.Author) bool { return strings.Contains(a.Name, name) }), nil
}

func (r *AuthorRepository) FindByNameStartsWith(ctx context.Context, prefix string) ([]model.Author, error) {
	return r.filter(func(a *model.Author) bool { return strings.HasPrefix(a.Name, prefix) }), nil
}

func (r *AuthorRepository) GetWithBookCount(ctx context.Context) ([]model.AuthorWithBookCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AuthorWithBookCount, 0, len(s.authors))
	for _, a := range s.authors {
		a = a.Clone()
		out = append(out, model.AuthorWithBookCount{
			ID:          a.ID,
			Name:        a.Name,
			DateOfBirth: a.DateOfBirth,
			BookCount:   s.countBooks(a.ID),
		})
	}
	return out, nil
}

func (r *AuthorRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	created := a.Clone()
	created.ID = s.nextAuthorID
	created.Books = nil
	created.CreatedAt = now
	created.UpdatedAt = now

	s.nextAuthorID++
	s.authors = append(s.authors, created)

	out := created.Clone()
	return &out, nil
}

func (r *AuthorRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.authorIndex(a.ID)
	if i < 0 {
		return nil, model.NotFound(a.ID)
	}

	updated := a.Clone()
	s.authors[i].Name = updated.Name
	s.authors[i].DateOfBirth = updated.DateOfBirth
	s.authors[i].UpdatedAt = s.now()

	return r.withBooks(i), nil
}

// Delete refuses to remove an author that still has books.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.authorIndex(id)
	if i < 0 {
		return model.NotFound(id)
	}
	if s.countBooks(id) > 0 {
		return model.HasBooks(id)
	}

	s.authors = append(s.authors[:i], s.authors[i+1:]...)
	return nil
}

func (r *AuthorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authorIndex(id) >= 0, nil
}

func (r *AuthorRepository) CountBooks(ctx context.Context, authorID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countBooks(authorID), nil
}
