package model

import (
	"strings"
	"time"
)

// DateLayout is the wire format of a date of birth.
const DateLayout = "2006-01-02"

// CreateAuthorRequest - POST /api/authors
type CreateAuthorRequest struct {
	Name        string  `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
}

// UpdateAuthorRequest - PUT /api/authors/:id
// Full replace of the mutable fields; ID must match the path.
type UpdateAuthorRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
}

// AuthorResponse - author as rendered by the API
type AuthorResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	DateOfBirth *string       `json:"date_of_birth"`
	Books       []BookSummary `json:"books,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// AuthorWithBookCountResponse - GET /api/authors/with-book-count item
type AuthorWithBookCountResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	BookCount   int     `json:"book_count"`
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ToEntity converts CreateAuthorRequest to Author entity
func (req *CreateAuthorRequest) ToEntity() (*Author, error) {
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &Author{
		Name:        strings.TrimSpace(req.Name),
		DateOfBirth: dob,
	}, nil
}

// ToEntity converts UpdateAuthorRequest to Author entity
func (req *UpdateAuthorRequest) ToEntity() (*Author, error) {
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &Author{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		DateOfBirth: dob,
	}, nil
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		DateOfBirth: formatDate(a.DateOfBirth),
		Books:       a.Books,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (a *AuthorWithBookCount) ToResponse() *AuthorWithBookCountResponse {
	return &AuthorWithBookCountResponse{
		ID:          a.ID,
		Name:        a.Name,
		DateOfBirth: formatDate(a.DateOfBirth),
		BookCount:   a.BookCount,
	}
}

// ToResponses converts a slice of authors, never returning nil.
func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, *authors[i].ToResponse())
	}
	return out
}
