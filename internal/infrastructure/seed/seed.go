// Package seed loads the sample library used in development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	authorModel "library-api/internal/domains/author/model"
	authorRepository "library-api/internal/domains/author/repository"
	bookModel "library-api/internal/domains/book/model"
	bookRepository "library-api/internal/domains/book/repository"
)

type sampleAuthor struct {
	name  string
	born  time.Time
	books []sampleBook
}

type sampleBook struct {
	title string
	year  int
}

var library = []sampleAuthor{
	{
		name: "Isaac Asimov",
		born: time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC),
		books: []sampleBook{
			{"The End of Eternity", 1955},
			{"Foundation", 1951},
		},
	},
	{
		name: "Arthur Conan Doyle",
		born: time.Date(1859, time.May, 22, 0, 0, 0, 0, time.UTC),
		books: []sampleBook{
			{"A Study in Scarlet", 1887},
			{"The Hound of the Baskervilles", 1902},
		},
	},
	{
		name: "Alexandre Dumas",
		born: time.Date(1802, time.July, 24, 0, 0, 0, 0, time.UTC),
		books: []sampleBook{
			{"The Count of Monte Cristo", 1844},
			{"The Three Musketeers", 1844},
		},
	},
}

// Result reports what Run inserted.
type Result struct {
	Authors int
	Books   int
	Skipped bool
}

// Run inserts the sample library through the repositories, but only into an
// empty author table.
func Run(ctx context.Context, authors authorRepository.RepositoryInterface, books bookRepository.RepositoryInterface) (Result, error) {
	existing, err := authors.GetAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check existing authors: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("authors", len(existing)).Msg("[SEED] Store not empty, skipping")
		return Result{Skipped: true}, nil
	}

	var res Result
	for _, sa := range library {
		born := sa.born
		a, err := authors.Create(ctx, &authorModel.Author{Name: sa.name, DateOfBirth: &born})
		if err != nil {
			return res, fmt.Errorf("failed to seed author %q: %w", sa.name, err)
		}
		res.Authors++

		for _, sb := range sa.books {
			if _, err := books.Create(ctx, &bookModel.Book{Title: sb.title, PublishedYear: sb.year, AuthorID: a.ID}); err != nil {
				return res, fmt.Errorf("failed to seed book %q: %w", sb.title, err)
			}
			res.Books++
		}
	}

	log.Info().Int("authors", res.Authors).Int("books", res.Books).Msg("[SEED] Sample library loaded")
	return res, nil
}
