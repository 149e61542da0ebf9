package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorRepository "library-api/internal/domains/author/repository"
	bookRepository "library-api/internal/domains/book/repository"
	"library-api/internal/infrastructure/database/dbtest"
	"library-api/internal/infrastructure/memory"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	store := memory.NewStore()

	stores := map[string]struct {
		authors authorRepository.RepositoryInterface
		books   bookRepository.RepositoryInterface
	}{
		"memory": {store.Authors(), store.Books()},
		"sqlite": {authorRepository.NewSQLRepository(db), bookRepository.NewSQLRepository(db)},
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			res, err := Run(ctx, s.authors, s.books)
			require.NoError(t, err)
			assert.Equal(t, Result{Authors: 3, Books: 6}, res)

			counts, err := s.authors.GetWithBookCount(ctx)
			require.NoError(t, err)
			require.Len(t, counts, 3)
			for _, c := range counts {
				assert.Equal(t, 2, c.BookCount, c.Name)
			}

			found, err := s.books.SearchByTitle(ctx, "Foundation")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "Isaac Asimov", found[0].Author.Name)

			res, err = Run(ctx, s.authors, s.books)
			require.NoError(t, err)
			assert.True(t, res.Skipped)

			all, err := s.books.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 6)
		})
	}
}
