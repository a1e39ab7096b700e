package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

// UIController renders the server-side pages under / and /books.
type UIController struct {
	books        services.BookManager
	exposeErrors bool
}

func NewUIController(books services.BookManager, exposeErrors bool) *UIController {
	return &UIController{
		books:        books,
		exposeErrors: exposeErrors,
	}
}

// page builds template data carrying the flash parameters of the request.
func page(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title":   title,
		"Success": c.Query("success"),
		"Error":   c.Query("error"),

		"CSRFToken": csrfToken(c),
	}
}

func (controller *UIController) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index", page(c, "Home"))
}

func (controller *UIController) BooksPage(c *gin.Context) {
	books, err := controller.books.ListBooks(c.Request.Context())
	if err != nil {
		controller.fail(c, err)
		return
	}

	data := page(c, "All Books")
	data["Books"] = books
	c.HTML(http.StatusOK, "books", data)
}

func (controller *UIController) BookPage(c *gin.Context) {
	book, err := controller.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.fail(c, err)
		return
	}

	data := page(c, book.Title)
	data["Book"] = book
	c.HTML(http.StatusOK, "book", data)
}

func (controller *UIController) NewBookPage(c *gin.Context) {
	controller.renderForm(c, http.StatusOK, nil, map[string]string{}, nil)
}

func (controller *UIController) EditBookPage(c *gin.Context) {
	book, err := controller.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.fail(c, err)
		return
	}
	controller.renderForm(c, http.StatusOK, &book, bookFormValues(book), nil)
}

func (controller *UIController) CreateBook(c *gin.Context) {
	raw, err := formFields(c)
	if err != nil {
		controller.renderForm(c, http.StatusBadRequest, nil, map[string]string{}, bodyError("could not be parsed"))
		return
	}

	book, err := controller.books.CreateBook(c.Request.Context(), raw)
	if verr, ok := apperr.AsValidation(err); ok {
		controller.renderForm(c, http.StatusBadRequest, nil, submittedValues(raw), verr)
		return
	}
	if err != nil {
		controller.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, withQuery(bookPath(book.ID), "success", msgBookCreated))
}

func (controller *UIController) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	if _, err := services.ParseID(id); err != nil {
		controller.fail(c, err)
		return
	}

	raw, err := formFields(c)
	if err != nil {
		controller.rerenderEdit(c, id, nil, bodyError("could not be parsed"))
		return
	}

	book, err := controller.books.UpdateBook(c.Request.Context(), id, raw)
	if verr, ok := apperr.AsValidation(err); ok {
		controller.rerenderEdit(c, id, raw, verr)
		return
	}
	if err != nil {
		controller.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, withQuery(bookPath(book.ID), "success", msgBookUpdated))
}

func (controller *UIController) DeleteBook(c *gin.Context) {
	if err := controller.books.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		controller.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, withQuery("/books", "success", msgBookDeleted))
}

// rerenderEdit shows the edit form again with the stored values overlaid by
// what was submitted.
func (controller *UIController) rerenderEdit(c *gin.Context, id string, raw map[string]any, verr *apperr.ValidationError) {
	current, err := controller.books.GetBook(c.Request.Context(), id)
	if err != nil {
		controller.fail(c, err)
		return
	}
	controller.renderForm(c, http.StatusBadRequest, &current, mergeValues(bookFormValues(current), raw), verr)
}

func (controller *UIController) renderForm(c *gin.Context, status int, book *entities.Book, values map[string]string, verr *apperr.ValidationError) {
	data := page(c, "Add Book")
	data["Action"] = "/books"
	data["Cancel"] = "/books"
	data["IsEdit"] = false
	if book != nil {
		data["Title"] = "Edit " + book.Title
		data["Action"] = bookPath(book.ID)
		data["Cancel"] = bookPath(book.ID)
		data["IsEdit"] = true
	}
	data["Form"] = values
	errs := map[string]string{}
	if verr != nil {
		errs = verr.ByField()
	}
	data["Errors"] = errs
	c.HTML(status, "book-form", data)
}

// fail maps service errors to the page flow: missing books go back to the
// list with an error flash, everything else renders the error page.
func (controller *UIController) fail(c *gin.Context, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		c.Redirect(http.StatusFound, withQuery("/books", "error", msgBookNotFound))
		return
	}

	_ = c.Error(err)
	data := page(c, "Error")
	data["Status"] = http.StatusInternalServerError
	data["Message"] = msgInternalError
	if controller.exposeErrors {
		data["Detail"] = err.Error()
	}
	c.HTML(http.StatusInternalServerError, "error", data)
}

func bookPath(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}

func bookFormValues(book entities.Book) map[string]string {
	values := map[string]string{
		"title":       book.Title,
		"author":      book.Author,
		"genre":       book.Genre,
		"description": book.Description,
		"isbn":        book.ISBN,
	}
	if book.PublishedYear != nil {
		values["published_year"] = fmt.Sprintf("%d", *book.PublishedYear)
	}
	return values
}

func submittedValues(raw map[string]any) map[string]string {
	return mergeValues(map[string]string{}, raw)
}

func mergeValues(values map[string]string, raw map[string]any) map[string]string {
	for key, v := range raw {
		if s, ok := v.(string); ok {
			values[key] = s
		}
	}
	return values
}
