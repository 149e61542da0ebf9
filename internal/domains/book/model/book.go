package model

import "time"

// Book is the core book entity. Author is filled in on reads.
type Book struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	PublishedYear int            `json:"published_year"`
	AuthorID      int64          `json:"author_id"`
	Author        *AuthorSummary `json:"author,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// AuthorSummary is the part of the author shown on a book.
type AuthorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Clone returns a deep copy.
func (b Book) Clone() Book {
	if b.Author != nil {
		a := *b.Author
		b.Author = &a
	}
	return b
}
