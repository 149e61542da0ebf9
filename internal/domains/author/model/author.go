package model

import "time"

// Author is the core author entity. Books is a back-reference and is only
// populated when a single author is loaded.
type Author struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	DateOfBirth *time.Time    `json:"date_of_birth"`
	Books       []BookSummary `json:"books,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookSummary is the part of a book shown under its author.
type BookSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	PublishedYear int    `json:"published_year"`
}

// AuthorWithBookCount is an author row aggregated with the number of books
// referencing it.
type AuthorWithBookCount struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	BookCount   int        `json:"book_count"`
}

// BirthYear returns the author's year of birth when it is known.
func (a *Author) BirthYear() (int, bool) {
	if a.DateOfBirth == nil {
		return 0, false
	}
	return a.DateOfBirth.Year(), true
}

// Clone returns a deep copy so callers can't mutate shared state.
func (a Author) Clone() Author {
	if a.DateOfBirth != nil {
		dob := *a.DateOfBirth
		a.DateOfBirth = &dob
	}
	if a.Books != nil {
		a.Books = append([]BookSummary(nil), a.Books...)
	}
	return a
}
