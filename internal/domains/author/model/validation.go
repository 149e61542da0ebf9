package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/apperr"
)

// Constants for validation
const (
	MaxNameLength = 100
)

// ValidateAuthor checks the field rules of an author against the current time.
// Name is expected to be trimmed already.
func ValidateAuthor(a *Author, now time.Time) error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Name,
			validation.Required.Error("name must not be empty"),
			validation.RuneLength(1, MaxNameLength).Error(fmt.Sprintf("name must not exceed %d characters", MaxNameLength)),
		),
		validation.Field(&a.DateOfBirth,
			validation.Max(now).Error("date of birth must not be in the future"),
		),
	)
	return apperr.FromValidation(ErrInvalidAuthor, err)
}
