package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trussworks/bookclub"
	"github.com/trussworks/bookclub/pkg/domain"
)

// PutReview  PUT /reviews/:isbn  (session protected)
// The review text comes from the JSON body, or the review query parameter.
func (ct *Controller) PutReview(c echo.Context) error {
	isbn := pathParam(c, "isbn")
	if isbn == "" {
		return ct.MissingISBN(c)
	}
	username, ok := bookclub.UsernameFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Username not found in session")
	}

	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		ct.log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Review == "" {
		req.Review = c.QueryParam("review")
	}
	if req.Review == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Review text is required")
	}

	err := ct.reviews.Upsert(c.Request().Context(), isbn, username, req.Review)
	if err != nil {
		return ct.writeError(c, isbn, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Review for the book with ISBN %s added/updated.", isbn),
	})
}

// DeleteReview  DELETE /reviews/:isbn  (session protected)
func (ct *Controller) DeleteReview(c echo.Context) error {
	isbn := pathParam(c, "isbn")
	if isbn == "" {
		return ct.MissingISBN(c)
	}
	username, ok := bookclub.UsernameFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Username not found in session")
	}

	err := ct.reviews.Delete(c.Request().Context(), isbn, username)
	if err != nil {
		return ct.writeError(c, isbn, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Review for the book with ISBN %s deleted.", isbn),
	})
}

// MissingISBN answers review writes that name no book.
func (ct *Controller) MissingISBN(c echo.Context) error {
	return echo.NewHTTPError(http.StatusBadRequest, "ISBN is required")
}

func (ct *Controller) writeError(c echo.Context, isbn string, err error) error {
	switch {
	case errors.Is(err, domain.ErrReviewNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Review for the book with ISBN %s not found", isbn))
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Book with ISBN %s not found", isbn))
	case errors.Is(err, domain.ErrMissingField):
		return echo.NewHTTPError(http.StatusBadRequest, "ISBN and review are required")
	default:
		return ct.internalError(c, "review update failed", err)
	}
}
