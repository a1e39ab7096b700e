package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

// BookEnvelope documents a single-book response.
type BookEnvelope struct {
	Success bool          `json:"success" example:"true"`
	Data    entities.Book `json:"data"`
}

// BookListEnvelope documents a list response.
type BookListEnvelope struct {
	Success bool            `json:"success" example:"true"`
	Data    []entities.Book `json:"data"`
}

// BookInput documents the accepted create/update body.
type BookInput struct {
	Title         string `json:"title" example:"Dune"`
	Author        string `json:"author" example:"Frank Herbert"`
	PublishedYear *int   `json:"published_year,omitempty" example:"1965"`
	Genre         string `json:"genre,omitempty" example:"Science Fiction"`
	Description   string `json:"description,omitempty"`
	ISBN          string `json:"isbn,omitempty" example:"978-0441013593"`
}

// BooksController serves the JSON API under /api/books.
type BooksController struct {
	books        services.BookManager
	exposeErrors bool
}

func NewBooksController(books services.BookManager, exposeErrors bool) *BooksController {
	return &BooksController{
		books:        books,
		exposeErrors: exposeErrors,
	}
}

// GetAllBooks godoc
//
//	@Summary	List all books
//	@Tags		books
//	@Produce	json
//	@Success	200	{object}	BookListEnvelope
//	@Failure	500	{object}	Envelope
//	@Router		/api/books [get]
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.books.ListBooks(c.Request.Context())
	if err != nil {
		controller.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, books)
}

// GetBook godoc
//
//	@Summary	Get a book by id
//	@Tags		books
//	@Produce	json
//	@Param		id	path		int	true	"Book ID"
//	@Success	200	{object}	BookEnvelope
//	@Failure	404	{object}	Envelope
//	@Failure	500	{object}	Envelope
//	@Router		/api/books/{id} [get]
func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, book)
}

// CreateBook godoc
//
//	@Summary	Create a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		BookInput	true	"Book to create"
//	@Success	201		{object}	BookEnvelope
//	@Failure	400		{object}	Envelope
//	@Failure	500		{object}	Envelope
//	@Router		/api/books [post]
func (controller *BooksController) CreateBook(c *gin.Context) {
	raw, err := requestFields(c)
	if err != nil {
		controller.fail(c, err)
		return
	}

	book, err := controller.books.CreateBook(c.Request.Context(), raw)
	if err != nil {
		controller.fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, book)
}

// UpdateBook godoc
//
//	@Summary	Update a book
//	@Description	Only the supplied fields are changed.
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int			true	"Book ID"
//	@Param		book	body		BookInput	true	"Fields to change"
//	@Success	200		{object}	BookEnvelope
//	@Failure	400		{object}	Envelope
//	@Failure	404		{object}	Envelope
//	@Failure	500		{object}	Envelope
//	@Router		/api/books/{id} [put]
func (controller *BooksController) UpdateBook(c *gin.Context) {
	if _, err := services.ParseID(c.Param("id")); err != nil {
		controller.fail(c, err)
		return
	}

	raw, err := requestFields(c)
	if err != nil {
		controller.fail(c, err)
		return
	}

	book, err := controller.books.UpdateBook(c.Request.Context(), c.Param("id"), raw)
	if err != nil {
		controller.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, book)
}

// DeleteBook godoc
//
//	@Summary	Delete a book
//	@Tags		books
//	@Produce	json
//	@Param		id	path		int	true	"Book ID"
//	@Success	200	{object}	Envelope
//	@Failure	404	{object}	Envelope
//	@Failure	500	{object}	Envelope
//	@Router		/api/books/{id} [delete]
func (controller *BooksController) DeleteBook(c *gin.Context) {
	if err := controller.books.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		controller.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, msgBookDeleted)
}

func (controller *BooksController) fail(c *gin.Context, err error) {
	if verr, ok := apperr.AsValidation(err); ok {
		respondValidation(c, verr)
		return
	}
	if errors.Is(err, apperr.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, msgBookNotFound)
		return
	}
	_ = c.Error(err)
	respondInternalError(c, err, controller.exposeErrors)
}
