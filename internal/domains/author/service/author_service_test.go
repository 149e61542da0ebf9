package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/repository"
	bookModel "library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/memory"
	"library-api/internal/shared/apperr"
)

var fixedNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (ServiceInterface, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewAuthorService(store.Authors(), clock), store
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      model.CreateAuthorRequest
		wantCode string
	}{
		{"valid", model.CreateAuthorRequest{Name: "Jules Verne", DateOfBirth: strPtr("1828-02-08")}, ""},
		{"no birth date", model.CreateAuthorRequest{Name: "Homer"}, ""},
		{"blank name", model.CreateAuthorRequest{Name: "   "}, "INVALID_AUTHOR"},
		{"future birth", model.CreateAuthorRequest{Name: "Tomorrow", DateOfBirth: strPtr("2026-06-02")}, "INVALID_AUTHOR"},
		{"bad date", model.CreateAuthorRequest{Name: "Homer", DateOfBirth: strPtr("02/08/1828")}, "INVALID_DATE_OF_BIRTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)

			a, err := svc.Create(ctx, &tt.req)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(1), a.ID)
				return
			}

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
		})
	}
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, &model.CreateAuthorRequest{Name: " Jules Verne ", DateOfBirth: strPtr("1828-02-08")})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jules Verne", got.Name)
	assert.Equal(t, "1828-02-08", got.DateOfBirth.Format(model.DateLayout))

	_, err = svc.GetByID(ctx, created.ID+1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, name := range []string{"Isaac Asimov", "Arthur Conan Doyle", "Alexandre Dumas"} {
		_, err := svc.Create(ctx, &model.CreateAuthorRequest{Name: name})
		require.NoError(t, err)
	}

	_, err := svc.Search(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrEmptyQuery)

	_, err = svc.GetByNamePrefix(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrEmptyQuery)

	found, err := svc.Search(ctx, "Dumas")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.GetByNamePrefix(ctx, "Al")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alexandre Dumas", found[0].Name)

	found, err = svc.Search(ctx, "Tolkien")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, &model.CreateAuthorRequest{Name: "Jules Vern"})
	require.NoError(t, err)

	t.Run("id mismatch", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, &model.UpdateAuthorRequest{ID: created.ID + 1, Name: "Jules Verne"})
		assert.ErrorIs(t, err, apperr.ErrIDMismatch)
	})

	t.Run("missing body id", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, &model.UpdateAuthorRequest{Name: "Jules Verne"})
		assert.ErrorIs(t, err, apperr.ErrIDMismatch)
	})

	t.Run("validation before not found", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, &model.UpdateAuthorRequest{ID: 99, Name: ""})
		assert.ErrorIs(t, err, model.ErrInvalidAuthor)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, &model.UpdateAuthorRequest{ID: 99, Name: "Nobody"})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})

	t.Run("ok", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, &model.UpdateAuthorRequest{
			ID: created.ID, Name: "Jules Verne", DateOfBirth: strPtr("1828-02-08"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Jules Verne", updated.Name)
		assert.NotNil(t, updated.DateOfBirth)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	a, err := svc.Create(ctx, &model.CreateAuthorRequest{Name: "Alexandre Dumas"})
	require.NoError(t, err)
	_, err = store.Books().Create(ctx, &bookModel.Book{Title: "The Three Musketeers", PublishedYear: 1844, AuthorID: a.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
	assert.Equal(t, apperr.KindIntegrity, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "1 book(s)")

	_, err = svc.GetByID(ctx, a.ID)
	require.NoError(t, err, "author must survive a refused delete")

	require.NoError(t, store.Books().Delete(ctx, 1))
	require.NoError(t, svc.Delete(ctx, a.ID))

	_, err = svc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, a.ID), model.ErrAuthorNotFound)
}

type failingRepository struct {
	mock.Mock
	repository.RepositoryInterface
}

func (m *failingRepository) GetAll(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *failingRepository) CountBooks(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestStoreFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	repo := new(failingRepository)
	svc := NewAuthorService(repo, clock)

	cause := errors.New("database is locked")
	repo.On("GetAll", ctx).Return(nil, apperr.Internal(cause, "failed to query authors"))
	repo.On("CountBooks", ctx, int64(1)).Return(0, apperr.Internal(cause, "failed to count books"))

	_, err := svc.GetAll(ctx)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.ErrorIs(t, err, cause)

	err = svc.Delete(ctx, 1)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	repo.AssertExpectations(t)
}
