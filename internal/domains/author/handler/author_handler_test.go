package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/service"
	bookModel "library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/memory"
	"library-api/internal/shared/apperr"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthorHandler(svc).RegisterRoutes(r.Group("/api/authors"))
	return r
}

func setup(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := func() time.Time { return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return setupRouter(service.NewAuthorService(store.Authors(), now)), store
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestCreateAndGet(t *testing.T) {
	r, _ := setup(t)

	w, env := do(r, http.MethodPost, "/api/authors", `{"id":55,"name":"Jules Verne","date_of_birth":"1828-02-08"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/authors/1", w.Header().Get("Location"))
	assert.True(t, env.Success)

	var created model.AuthorResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.DateOfBirth)
	assert.Equal(t, "1828-02-08", *created.DateOfBirth)

	w, env = do(r, http.MethodGet, "/api/authors/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got model.AuthorResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Jules Verne", got.Name)
}

func TestCreate_BadRequests(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"name":`, "BAD_REQUEST"},
		{"blank name", `{"name":"  "}`, "INVALID_AUTHOR"},
		{"name too long", `{"name":"` + strings.Repeat("x", 101) + `"}`, "INVALID_AUTHOR"},
		{"future birth", `{"name":"Unborn","date_of_birth":"2030-01-01"}`, "INVALID_AUTHOR"},
		{"unparseable date", `{"name":"Homer","date_of_birth":"long ago"}`, "INVALID_DATE_OF_BIRTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(r, http.MethodPost, "/api/authors", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestGetByID_Errors(t *testing.T) {
	r, _ := setup(t)

	w, env := do(r, http.MethodGet, "/api/authors/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	w, env = do(r, http.MethodGet, "/api/authors/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "AUTHOR_NOT_FOUND", env.Error.Code)
	assert.Contains(t, env.Error.Message, "7")

	for _, path := range []string{"/api/authors/0", "/api/authors/-4"} {
		w, env = do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "AUTHOR_NOT_FOUND", env.Error.Code, path)

		w, _ = do(r, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestListEndpoints(t *testing.T) {
	r, store := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Isaac Asimov", "Arthur Conan Doyle", "Alexandre Dumas"} {
		w, _ := do(r, http.MethodPost, "/api/authors", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	_, err := store.Books().Create(ctx, &bookModel.Book{Title: "Foundation", PublishedYear: 1951, AuthorID: 1})
	require.NoError(t, err)

	var list []model.AuthorResponse

	w, env := do(r, http.MethodGet, "/api/authors", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 3)

	w, env = do(r, http.MethodGet, "/api/authors/search?name=Doyle", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Arthur Conan Doyle", list[0].Name)

	w, env = do(r, http.MethodGet, "/api/authors/search?name=Tolkien", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = do(r, http.MethodGet, "/api/authors/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_QUERY", env.Error.Code)

	w, env = do(r, http.MethodGet, "/api/authors/name-starts-with?prefix=A", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	w, env = do(r, http.MethodGet, "/api/authors/with-book-count", "")
	require.Equal(t, http.StatusOK, w.Code)
	var counts []model.AuthorWithBookCountResponse
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	require.Len(t, counts, 3)
	assert.Equal(t, 1, counts[0].BookCount)
	assert.Equal(t, 0, counts[2].BookCount)
}

func TestUpdate(t *testing.T) {
	r, _ := setup(t)
	do(r, http.MethodPost, "/api/authors", `{"name":"Jules Vern"}`)

	w, env := do(r, http.MethodPut, "/api/authors/1", `{"id":2,"name":"Jules Verne"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID_MISMATCH", env.Error.Code)

	w, _ = do(r, http.MethodPut, "/api/authors/9", `{"id":9,"name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodPut, "/api/authors/1", `{"id":1,"name":"Jules Verne","date_of_birth":"1828-02-08"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	_, env = do(r, http.MethodGet, "/api/authors/1", "")
	var got model.AuthorResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Jules Verne", got.Name)
}

func TestDelete(t *testing.T) {
	r, store := setup(t)
	do(r, http.MethodPost, "/api/authors", `{"name":"Alexandre Dumas"}`)
	_, err := store.Books().Create(context.Background(), &bookModel.Book{Title: "Queen Margot", PublishedYear: 1845, AuthorID: 1})
	require.NoError(t, err)

	w, env := do(r, http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "AUTHOR_HAS_BOOKS", env.Error.Code)

	require.NoError(t, store.Books().Delete(context.Background(), 1))

	w, _ = do(r, http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(r, http.MethodGet, "/api/authors/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type mockService struct {
	mock.Mock
	service.ServiceInterface
}

func (m *mockService) GetAll(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	svc := new(mockService)
	svc.On("GetAll", mock.Anything).Return(nil, apperr.Internal(errors.New("secret dsn leaked"), "failed to query authors"))

	w, env := do(setupRouter(svc), http.MethodGet, "/api/authors", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", env.Error.Message)
	assert.NotContains(t, w.Body.String(), "secret")
}
