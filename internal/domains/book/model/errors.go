package model

import (
	"library-api/internal/shared/apperr"
)

var (
	ErrInvalidBook   = apperr.Validation("INVALID_BOOK", "book is invalid")
	ErrAuthorMissing = apperr.Validation("AUTHOR_MISSING", "author does not exist")
	ErrBeforeBirth   = apperr.Validation("PUBLISHED_BEFORE_BIRTH", "book cannot be published before the author was born")

	ErrBookNotFound   = apperr.NotFound("BOOK_NOT_FOUND", "book not found")
	ErrAuthorNotFound = apperr.NotFound("AUTHOR_NOT_FOUND", "author not found")
)

func NotFound(id int64) error {
	return ErrBookNotFound.Newf("book with id %d not found", id)
}

// AuthorMissing is returned when a book references an author that does not exist.
func AuthorMissing(authorID int64) error {
	return ErrAuthorMissing.Newf("author with id %d does not exist", authorID)
}

func BeforeBirth(birthYear int) error {
	return ErrBeforeBirth.Newf("book cannot be published before the author's birth year (%d)", birthYear)
}

// AuthorNotFound is returned when listing books of an unknown author.
func AuthorNotFound(authorID int64) error {
	return ErrAuthorNotFound.Newf("author with id %d not found", authorID)
}
