package model

import (
	"strings"
	"time"
)

// CreateBookRequest - POST /api/books
type CreateBookRequest struct {
	Title         string `json:"title"`
	PublishedYear int    `json:"published_year"`
	AuthorID      int64  `json:"author_id"`
}

// UpdateBookRequest - PUT /api/books/:id
type UpdateBookRequest struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	PublishedYear int    `json:"published_year"`
	AuthorID      int64  `json:"author_id"`
}

type BookResponse struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	PublishedYear int            `json:"published_year"`
	AuthorID      int64          `json:"author_id"`
	Author        *AuthorSummary `json:"author,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (req *CreateBookRequest) ToEntity() *Book {
	return &Book{
		Title:         strings.TrimSpace(req.Title),
		PublishedYear: req.PublishedYear,
		AuthorID:      req.AuthorID,
	}
}

func (req *UpdateBookRequest) ToEntity() *Book {
	return &Book{
		ID:            req.ID,
		Title:         strings.TrimSpace(req.Title),
		PublishedYear: req.PublishedYear,
		AuthorID:      req.AuthorID,
	}
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		PublishedYear: b.PublishedYear,
		AuthorID:      b.AuthorID,
		Author:        b.Author,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToResponses converts a slice of books, never returning nil.
func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, *books[i].ToResponse())
	}
	return out
}
