// Package memory is a process-local store for authors and books. One Store
// owns both collections so the author-has-books guard and the book-author
// reference are checked under the same lock.
package memory

import (
	"sync"
	"time"

	authorModel "library-api/internal/domains/author/model"
	bookModel "library-api/internal/domains/book/model"
)

type Store struct {
	mu sync.RWMutex

	authors      []authorModel.Author
	books        []bookModel.Book
	nextAuthorID int64
	nextBookID   int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		nextAuthorID: 1,
		nextBookID:   1,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Authors returns a repository view over the store's authors.
func (s *Store) Authors() *AuthorRepository {
	return &AuthorRepository{store: s}
}

// Books returns a repository view over the store's books.
func (s *Store) Books() *BookRepository {
	return &BookRepository{store: s}
}

// Callers must hold mu.
func (s *Store) authorIndex(id int64) int {
	for i := range s.authors {
		if s.authors[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) bookIndex(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) countBooks(authorID int64) int {
	n := 0
	for i := range s.books {
		if s.books[i].AuthorID == authorID {
			n++
		}
	}
	return n
}

// withAuthor returns a copy of b with its author summary filled in.
func (s *Store) withAuthor(b bookModel.Book) bookModel.Book {
	b = b.Clone()
	if i := s.authorIndex(b.AuthorID); i >= 0 {
		b.Author = &bookModel.AuthorSummary{ID: s.authors[i].ID, Name: s.authors[i].Name}
	}
	return b
}
