package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-api/internal/domains/author/model"
	bookModel "library-api/internal/domains/book/model"
)

func dob(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	authors := store.Authors()

	created, err := authors.Create(ctx, &authorModel.Author{ID: 77, Name: "Jules Verne", DateOfBirth: dob(1828, time.February, 8)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := authors.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jules Verne", got.Name)
	assert.NotNil(t, got.Books)
	assert.Empty(t, got.Books)

	updated, err := authors.Update(ctx, &authorModel.Author{ID: 1, Name: "J. Verne"})
	require.NoError(t, err)
	assert.Equal(t, "J. Verne", updated.Name)
	assert.Nil(t, updated.DateOfBirth)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = authors.Update(ctx, &authorModel.Author{ID: 9, Name: "Ghost"})
	assert.ErrorIs(t, err, authorModel.ErrAuthorNotFound)

	require.NoError(t, authors.Delete(ctx, 1))
	assert.ErrorIs(t, authors.Delete(ctx, 1), authorModel.ErrAuthorNotFound)

	// ids are never reused
	next, err := authors.Create(ctx, &authorModel.Author{Name: "Homer"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestAuthorRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	authors := NewStore().Authors()

	input := &authorModel.Author{Name: "Isaac Asimov", DateOfBirth: dob(1920, time.January, 2)}
	_, err := authors.Create(ctx, input)
	require.NoError(t, err)

	*input.DateOfBirth = time.Time{}
	input.Name = "mutated"

	got, err := authors.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Isaac Asimov", got.Name)
	assert.Equal(t, 1920, got.DateOfBirth.Year())

	got.Name = "mutated again"
	again, _ := authors.GetByID(ctx, 1)
	assert.Equal(t, "Isaac Asimov", again.Name)
}

func TestAuthorRepository_Search(t *testing.T) {
	ctx := context.Background()
	authors := NewStore().Authors()

	for _, name := range []string{"Isaac Asimov", "Arthur Conan Doyle", "Alexandre Dumas"} {
		_, err := authors.Create(ctx, &authorModel.Author{Name: name})
		require.NoError(t, err)
	}

	found, _ := authors.FindByName(ctx, "Doyle")
	require.Len(t, found, 1)

	found, _ = authors.FindByName(ctx, "doyle")
	assert.Empty(t, found)

	found, _ = authors.FindByNameStartsWith(ctx, "A")
	require.Len(t, found, 2)
	assert.Equal(t, int64(2), found[0].ID)
	assert.Equal(t, int64(3), found[1].ID)

	found, _ = authors.FindByNameStartsWith(ctx, "Q")
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	authors, books := store.Authors(), store.Books()

	verne, err := authors.Create(ctx, &authorModel.Author{Name: "Jules Verne"})
	require.NoError(t, err)

	_, err = books.Create(ctx, &bookModel.Book{Title: "Orphan", PublishedYear: 1900, AuthorID: 99})
	assert.ErrorIs(t, err, bookModel.ErrAuthorMissing)

	created, err := books.Create(ctx, &bookModel.Book{ID: 50, Title: "Around the World in Eighty Days", PublishedYear: 1872, AuthorID: verne.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Author)
	assert.Equal(t, "Jules Verne", created.Author.Name)

	withBooks, err := authors.GetByID(ctx, verne.ID)
	require.NoError(t, err)
	require.Len(t, withBooks.Books, 1)
	assert.Equal(t, 1872, withBooks.Books[0].PublishedYear)

	err = authors.Delete(ctx, verne.ID)
	assert.ErrorIs(t, err, authorModel.ErrAuthorHasBooks)

	n, _ := authors.CountBooks(ctx, verne.ID)
	assert.Equal(t, 1, n)

	counts, _ := authors.GetWithBookCount(ctx)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].BookCount)

	_, err = books.Update(ctx, &bookModel.Book{ID: 1, Title: "Around the World", PublishedYear: 1873, AuthorID: 42})
	assert.ErrorIs(t, err, bookModel.ErrAuthorMissing)

	updated, err := books.Update(ctx, &bookModel.Book{ID: 1, Title: "Around the World", PublishedYear: 1873, AuthorID: verne.ID})
	require.NoError(t, err)
	assert.Equal(t, "Around the World", updated.Title)

	_, err = books.Update(ctx, &bookModel.Book{ID: 9, Title: "Ghost", PublishedYear: 1873, AuthorID: verne.ID})
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)

	require.NoError(t, books.Delete(ctx, 1))
	assert.ErrorIs(t, books.Delete(ctx, 1), bookModel.ErrBookNotFound)
	require.NoError(t, authors.Delete(ctx, verne.ID))
}

func TestBookRepository_AuthorRenameIsVisible(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	a, _ := store.Authors().Create(ctx, &authorModel.Author{Name: "Dumas"})
	_, err := store.Books().Create(ctx, &bookModel.Book{Title: "Queen Margot", PublishedYear: 1845, AuthorID: a.ID})
	require.NoError(t, err)

	_, err = store.Authors().Update(ctx, &authorModel.Author{ID: a.ID, Name: "Alexandre Dumas"})
	require.NoError(t, err)

	b, err := store.Books().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alexandre Dumas", b.Author.Name)
}

func TestBookRepository_Queries(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	books := store.Books()

	asimov, _ := store.Authors().Create(ctx, &authorModel.Author{Name: "Isaac Asimov"})
	doyle, _ := store.Authors().Create(ctx, &authorModel.Author{Name: "Arthur Conan Doyle"})

	for _, b := range []bookModel.Book{
		{Title: "I, Robot", PublishedYear: 1950, AuthorID: asimov.ID},
		{Title: "Foundation", PublishedYear: 1951, AuthorID: asimov.ID},
		{Title: "A Study in Scarlet", PublishedYear: 1887, AuthorID: doyle.ID},
	} {
		_, err := books.Create(ctx, &b)
		require.NoError(t, err)
	}

	after, _ := books.GetPublishedAfter(ctx, 1950)
	require.Len(t, after, 1)
	assert.Equal(t, "Foundation", after[0].Title)

	byAuthor, _ := books.GetByAuthorID(ctx, doyle.ID)
	require.Len(t, byAuthor, 1)

	found, _ := books.SearchByTitle(ctx, "Scarlet")
	require.Len(t, found, 1)
	found, _ = books.SearchByTitle(ctx, "scarlet")
	assert.Empty(t, found)

	exists, _ := books.Exists(ctx, 3)
	assert.True(t, exists)
	exists, _ = books.Exists(ctx, 4)
	assert.False(t, exists)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	authors := store.Authors()

	const n = 100
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := authors.Create(ctx, &authorModel.Author{Name: "Writer"})
			if err == nil {
				ids <- a.ID
			}
			_, _ = authors.GetAll(ctx)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	all, _ := authors.GetAll(ctx)
	assert.Len(t, all, n)
	for i, a := range all {
		assert.Equal(t, int64(i+1), a.ID)
	}
}
