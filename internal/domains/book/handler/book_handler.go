package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared/response"
	"library-api/internal/shared/utils"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// ROUTES: /api/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/search", h.SearchByTitle)
	rg.GET("/by-author/:authorId", h.GetByAuthor)
	rg.GET("/published-after/:year", h.GetPublishedAfter)
	rg.GET("/:id", h.GetByID)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *BookHandler) list(c *gin.Context, books []model.Book, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.ToResponses(books))
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /api/books
// ════════════════════════════════════════════════════════════════

// GetAll lists every book with its author.
// @Summary      List books
// @Tags         Books
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.BookResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/books [get]
func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	h.list(c, books, err)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /api/books/:id
// ════════════════════════════════════════════════════════════════

// @Summary      Get book
// @Tags         Books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      200  {object}  response.Response{data=model.BookResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GetByAuthor - GET /api/books/by-author/:authorId
// ════════════════════════════════════════════════════════════════

// GetByAuthor answers 404 when the author does not exist.
// @Summary      List books of an author
// @Tags         Books
// @Produce      json
// @Param        authorId  path  int  true  "Author ID"
// @Success      200  {object}  response.Response{data=[]model.BookResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/books/by-author/{authorId} [get]
func (h *BookHandler) GetByAuthor(c *gin.Context) {
	authorID, err := utils.ParseID(c, "authorId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	books, err := h.service.GetByAuthor(c.Request.Context(), authorID)
	h.list(c, books, err)
}

// ════════════════════════════════════════════════════════════════
// READ: GetPublishedAfter - GET /api/books/published-after/:year
// ════════════════════════════════════════════════════════════════

// GetPublishedAfter lists books published strictly after year.
// @Summary      List books published after a year
// @Tags         Books
// @Produce      json
// @Param        year  path  int  true  "Exclusive lower bound"
// @Success      200  {object}  response.Response{data=[]model.BookResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/books/published-after/{year} [get]
func (h *BookHandler) GetPublishedAfter(c *gin.Context) {
	year, err := utils.ParseInt(c, "year")
	if err != nil {
		response.FromError(c, err)
		return
	}

	books, err := h.service.GetPublishedAfter(c.Request.Context(), year)
	h.list(c, books, err)
}

// ════════════════════════════════════════════════════════════════
// SEARCH: SearchByTitle - GET /api/books/search?title=
// ════════════════════════════════════════════════════════════════

// @Summary      Search books by title
// @Tags         Books
// @Produce      json
// @Param        title  query  string  true  "Substring of the title"
// @Success      200  {object}  response.Response{data=[]model.BookResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/books/search [get]
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	books, err := h.service.SearchByTitle(c.Request.Context(), c.Query("title"))
	h.list(c, books, err)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/books
// ════════════════════════════════════════════════════════════════

// Create checks the author exists and was born before publication.
// @Summary      Create book
// @Tags         Books
// @Accept       json
// @Produce      json
// @Param        book  body  model.CreateBookRequest  true  "Book"
// @Success      201  {object}  response.Response{data=model.BookResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/books/%d", b.ID), b.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/books/:id
// ════════════════════════════════════════════════════════════════

// @Summary      Update book
// @Tags         Books
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "Book ID"
// @Param        book  body  model.UpdateBookRequest  true  "Book"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/books/:id
// ════════════════════════════════════════════════════════════════

// @Summary      Delete book
// @Tags         Books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
