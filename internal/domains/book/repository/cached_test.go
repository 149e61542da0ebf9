package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/book/model"
	"library-api/pkg/cache/cachetest"
)

type mockRepository struct {
	mock.Mock
	RepositoryInterface
}

func (m *mockRepository) book(args mock.Arguments) (*model.Book, error) {
	if b, ok := args.Get(0).(*model.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.book(m.Called(ctx, id))
}

func (m *mockRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	return m.book(m.Called(ctx, b))
}

func (m *mockRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	return m.book(m.Called(ctx, b))
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

const ttl = time.Minute

// newCached runs both invalidation passes inline.
func newCached(inner RepositoryInterface, c *cachetest.MockCache) RepositoryInterface {
	repo := NewCachedRepository(inner, c, ttl).(*cachedRepository)
	repo.delay = 0
	return repo
}

func TestCachedRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		inner := new(mockRepository)
		c := new(cachetest.MockCache)
		c.On("Get", ctx, "book:1", mock.Anything).Return(true, nil, model.Book{ID: 1, Title: "Foundation"})

		got, err := NewCachedRepository(inner, c, ttl).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Foundation", got.Title)
		inner.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("miss", func(t *testing.T) {
		inner := new(mockRepository)
		c := new(cachetest.MockCache)
		book := &model.Book{ID: 1, Title: "Foundation"}

		c.On("Get", ctx, "book:1", mock.Anything).Return(false, nil)
		inner.On("GetByID", ctx, int64(1)).Return(book, nil)
		c.On("Set", ctx, "book:1", book, ttl).Return(nil)

		got, err := NewCachedRepository(inner, c, ttl).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Same(t, book, got)
		c.AssertExpectations(t)
	})
}

func TestCachedRepository_CreateInvalidatesAuthor(t *testing.T) {
	ctx := context.Background()
	inner := new(mockRepository)
	c := new(cachetest.MockCache)
	b := &model.Book{Title: "Foundation", PublishedYear: 1951, AuthorID: 1}

	inner.On("Create", ctx, b).Return(&model.Book{ID: 2, Title: "Foundation", PublishedYear: 1951, AuthorID: 1}, nil)
	c.On("Delete", ctx, []string{"author:1"}).Return(nil)

	_, err := newCached(inner, c).Create(ctx, b)
	require.NoError(t, err)
	c.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "Delete", 2)
}

func TestCachedRepository_UpdateInvalidatesOldAndNewAuthor(t *testing.T) {
	ctx := context.Background()
	inner := new(mockRepository)
	c := new(cachetest.MockCache)
	b := &model.Book{ID: 7, Title: "Queen Margot", PublishedYear: 1845, AuthorID: 3}

	inner.On("GetByID", ctx, int64(7)).Return(&model.Book{ID: 7, AuthorID: 2}, nil)
	inner.On("Update", ctx, b).Return(b, nil)
	c.On("Delete", ctx, []string{"book:7", "author:3", "author:2"}).Return(nil)

	_, err := newCached(inner, c).Update(ctx, b)
	require.NoError(t, err)
	c.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "Delete", 2)
}

func TestCachedRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates book and author", func(t *testing.T) {
		inner := new(mockRepository)
		c := new(cachetest.MockCache)

		inner.On("GetByID", ctx, int64(7)).Return(&model.Book{ID: 7, AuthorID: 2}, nil)
		inner.On("Delete", ctx, int64(7)).Return(nil)
		c.On("Delete", ctx, []string{"book:7", "author:2"}).Return(nil)

		require.NoError(t, newCached(inner, c).Delete(ctx, 7))
		c.AssertExpectations(t)
		c.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("missing book", func(t *testing.T) {
		inner := new(mockRepository)
		c := new(cachetest.MockCache)

		inner.On("GetByID", ctx, int64(8)).Return(nil, model.NotFound(8))
		inner.On("Delete", ctx, int64(8)).Return(model.NotFound(8))

		err := newCached(inner, c).Delete(ctx, 8)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		c.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
