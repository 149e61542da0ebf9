package memory

import (
	"context"
	"strings"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
)

// BookRepository implements the book repository on a Store.
type BookRepository struct {
	store *Store
}

var _ repository.RepositoryInterface = (*BookRepository)(nil)

func (r *BookRepository) filter(match func(b *model.Book) bool) []model.Book {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Book, 0)
	for i := range s.books {
		if match(&s.books[i]) {
			out = append(out, s.withAuthor(s.books[i]))
		}
	}
	return out
}

func (r *BookRepository) GetAll(ctx context.Context) ([]model.Book, error) {
	return r.filter(func(*model.Book) bool { return true }), nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.bookIndex(id)
	if i < 0 {
		return nil, model.NotFound(id)
	}
	b := s.withAuthor(s.books[i])
	return &b, nil
}

func (r *BookRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]model.Book, error) {
	return r.filter(func(b *model.Book) bool { return b.AuthorID == authorID }), nil
}

func (r *BookRepository) GetPublishedAfter(ctx context.Context, year int) ([]model.Book, error) {
	return r.filter(func(b *model.Book) bool { return b.PublishedYear > year }), nil
}

func (r *BookRepository) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return r.filter(func(b *model.Book) bool { return strings.Contains(b.Title, title) }), nil
}

// Create stores b with the next id. The author must exist.
func (r *BookRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authorIndex(b.AuthorID) < 0 {
		return nil, model.AuthorMissing(b.AuthorID)
	}

	now := s.now()
	created := b.Clone()
	created.ID = s.nextBookID
	created.Author = nil
	created.CreatedAt = now
	created.UpdatedAt = now

	s.nextBookID++
	s.books = append(s.books, created)

	out := s.withAuthor(created)
	return &out, nil
}

func (r *BookRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookIndex(b.ID)
	if i < 0 {
		return nil, model.NotFound(b.ID)
	}
	if s.authorIndex(b.AuthorID) < 0 {
		return nil, model.AuthorMissing(b.AuthorID)
	}

	s.books[i].Title = b.Title
	s.books[i].PublishedYear = b.PublishedYear
	s.books[i].AuthorID = b.AuthorID
	s.books[i].UpdatedAt = s.now()

	out := s.withAuthor(s.books[i])
	return &out, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookIndex(id)
	if i < 0 {
		return model.NotFound(id)
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return nil
}

func (r *BookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookIndex(id) >= 0, nil
}
