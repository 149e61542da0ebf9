package model

import (
	"library-api/internal/shared/apperr"
)

var (
	// Validation Errors
	ErrInvalidAuthor      = apperr.Validation("INVALID_AUTHOR", "author is invalid")
	ErrInvalidDateOfBirth = apperr.Validation("INVALID_DATE_OF_BIRTH", "date_of_birth must be formatted as YYYY-MM-DD")

	// Business Rule Errors
	ErrAuthorNotFound = apperr.NotFound("AUTHOR_NOT_FOUND", "author not found")
	ErrAuthorHasBooks = apperr.Integrity("AUTHOR_HAS_BOOKS", "cannot delete author with linked books")
)

// NotFound returns ErrAuthorNotFound naming id.
func NotFound(id int64) error {
	return ErrAuthorNotFound.Newf("author with id %d not found", id)
}

// HasBooks returns ErrAuthorHasBooks naming id.
func HasBooks(id int64) error {
	return ErrAuthorHasBooks.Newf("cannot delete author with id %d: author still has books", id)
}
