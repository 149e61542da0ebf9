package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/author/model"
	"library-api/internal/domains/author/service"
	"library-api/internal/shared/response"
	"library-api/internal/shared/utils"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// ROUTES: /api/authors
// ════════════════════════════════════════════════════════════════

// RegisterRoutes mounts the author endpoints on rg (typically /api/authors).
func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/search", h.Search)
	rg.GET("/name-starts-with", h.GetByNamePrefix)
	rg.GET("/with-book-count", h.GetWithBookCount)
	rg.GET("/:id", h.GetByID)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /api/authors
// ════════════════════════════════════════════════════════════════

// GetAll lists every author ordered by id.
// @Summary      List authors
// @Tags         Authors
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.AuthorResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/authors [get]
func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(authors))
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /api/authors/:id
// ════════════════════════════════════════════════════════════════

// GetByID returns the author with their books.
// @Summary      Get author
// @Tags         Authors
// @Produce      json
// @Param        id  path  int  true  "Author ID"
// @Success      200  {object}  response.Response{data=model.AuthorResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/authors/{id} [get]
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// SEARCH: Search - GET /api/authors/search?name=
// ════════════════════════════════════════════════════════════════

// Search matches name as a case-sensitive substring.
// @Summary      Search authors by name
// @Tags         Authors
// @Produce      json
// @Param        name  query  string  true  "Substring of the name"
// @Success      200  {object}  response.Response{data=[]model.AuthorResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/authors/search [get]
func (h *AuthorHandler) Search(c *gin.Context) {
	authors, err := h.service.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(authors))
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GetByNamePrefix - GET /api/authors/name-starts-with?prefix=
// ════════════════════════════════════════════════════════════════

// GetByNamePrefix matches the leading part of the name.
// @Summary      Find authors by name prefix
// @Tags         Authors
// @Produce      json
// @Param        prefix  query  string  true  "Leading part of the name"
// @Success      200  {object}  response.Response{data=[]model.AuthorResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/authors/name-starts-with [get]
func (h *AuthorHandler) GetByNamePrefix(c *gin.Context) {
	authors, err := h.service.GetByNamePrefix(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(authors))
}

// ════════════════════════════════════════════════════════════════
// READ: GetWithBookCount - GET /api/authors/with-book-count
// ════════════════════════════════════════════════════════════════

// GetWithBookCount lists authors with the number of books each has.
// @Summary      List authors with book counts
// @Tags         Authors
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.AuthorWithBookCountResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/authors/with-book-count [get]
func (h *AuthorHandler) GetWithBookCount(c *gin.Context) {
	rows, err := h.service.GetWithBookCount(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]model.AuthorWithBookCountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToResponse())
	}
	response.Success(c, http.StatusOK, out)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/authors
// ════════════════════════════════════════════════════════════════

// Create stores a new author. Any id in the body is ignored.
// @Summary      Create author
// @Tags         Authors
// @Accept       json
// @Produce      json
// @Param        author  body  model.CreateAuthorRequest  true  "Author"
// @Success      201  {object}  response.Response{data=model.AuthorResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/authors/%d", a.ID), a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/authors/:id
// ════════════════════════════════════════════════════════════════

// Update replaces name and date of birth. The body id must equal the path id.
// @Summary      Update author
// @Tags         Authors
// @Accept       json
// @Produce      json
// @Param        id      path  int                        true  "Author ID"
// @Param        author  body  model.UpdateAuthorRequest  true  "Author"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateAuthorRequest
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
// DELETE: DELETE /api/authors/:id
// ════════════════════════════════════════════════════════════════

// Delete removes an author that has no books.
// @Summary      Delete author
// @Tags         Authors
// @Produce      json
// @Param        id  path  int  true  "Author ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
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
