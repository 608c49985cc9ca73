package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/trussworks/bookclub/pkg/domain"
)

// ListBooks  GET / and GET /books
func (ct *Controller) ListBooks(c echo.Context) error {
	all, err := ct.books.ListAll(c.Request().Context())
	if err != nil {
		return ct.readError(c, "Books not available", err)
	}
	return c.JSON(http.StatusOK, all)
}

// GetBook  GET /books/:isbn
func (ct *Controller) GetBook(c echo.Context) error {
	isbn := pathParam(c, "isbn")
	book, err := ct.books.GetByKey(c.Request().Context(), isbn)
	if err != nil {
		return ct.readError(c, fmt.Sprintf("Book with ISBN %s not found", isbn), err)
	}
	return c.JSON(http.StatusOK, book)
}

// BooksByAuthor  GET /books/author/:author
func (ct *Controller) BooksByAuthor(c echo.Context) error {
	author := pathParam(c, "author")
	found, err := ct.books.FindByAuthor(c.Request().Context(), author)
	if err == nil && len(found) == 0 {
		err = domain.ErrNotFound
	}
	if err != nil {
		return ct.readError(c, fmt.Sprintf("No books found by author %s", author), err)
	}
	return c.JSON(http.StatusOK, found)
}

// BooksByTitle  GET /books/title/:title
func (ct *Controller) BooksByTitle(c echo.Context) error {
	title := pathParam(c, "title")
	found, err := ct.books.FindByTitle(c.Request().Context(), title)
	if err == nil && len(found) == 0 {
		err = domain.ErrNotFound
	}
	if err != nil {
		return ct.readError(c, fmt.Sprintf("No books found with title %s", title), err)
	}
	return c.JSON(http.StatusOK, found)
}

// GetReviews  GET /books/:isbn/reviews
func (ct *Controller) GetReviews(c echo.Context) error {
	isbn := pathParam(c, "isbn")
	list, err := ct.books.GetReviews(c.Request().Context(), isbn)
	if err != nil {
		return ct.readError(c, fmt.Sprintf("Book with ISBN %s not found", isbn), err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}

// readError maps query failures. An unavailable catalog reads as not found.
func (ct *Controller) readError(c echo.Context, notFound string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
	default:
		return ct.internalError(c, "catalog read failed", err)
	}
}

// pathParam returns the unescaped value of a path parameter. Echo routes on
// URL.RawPath when the request has one, so only then are params still escaped.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
