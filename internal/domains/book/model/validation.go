package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/apperr"
)

const (
	MaxTitleLength   = 200
	MinPublishedYear = 1000
)

// MaxPublishedYear is the latest accepted publication year relative to now.
func MaxPublishedYear(now time.Time) int {
	return now.Year() + 1
}

// ValidateBook checks the fields of b that need no store lookup.
// The author reference is resolved by the service.
func ValidateBook(b *Book, now time.Time) error {
	maxYear := MaxPublishedYear(now)
	yearMsg := fmt.Sprintf("published year must be between %d and %d", MinPublishedYear, maxYear)

	err := validation.ValidateStruct(b,
		validation.Field(&b.Title,
			validation.Required.Error("title must not be empty"),
			validation.RuneLength(1, MaxTitleLength).Error(fmt.Sprintf("title must be at most %d characters", MaxTitleLength)),
		),
		validation.Field(&b.PublishedYear,
			validation.Required.Error(yearMsg),
			validation.Min(MinPublishedYear).Error(yearMsg),
			validation.Max(maxYear).Error(yearMsg),
		),
		validation.Field(&b.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.Min(int64(1)).Error("author_id must be a positive integer"),
		),
	)
	return apperr.FromValidation(ErrInvalidBook, err)
}
