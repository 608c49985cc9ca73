// Package api is the HTTP surface of the book club: public catalog reads,
// registration and login, and session protected review management.
package api

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"

	"github.com/trussworks/bookclub"
	"github.com/trussworks/bookclub/pkg/books"
	"github.com/trussworks/bookclub/pkg/reviews"
)

// Registrar adds users to the directory
type Registrar interface {
	Register(username string, password string) error
}

// Deps are the collaborators the handlers need.
type Deps struct {
	SessionManager *scs.SessionManager
	Sessions       bookclub.UserSessions
	Users          Registrar
	Books          books.Service
	Reviews        reviews.Service
	Log            *slog.Logger
}

// Controller holds the handlers
type Controller struct {
	sessions bookclub.UserSessions
	users    Registrar
	books    books.Service
	reviews  reviews.Service
	log      *slog.Logger
}

// NewRouter returns the echo router without the session middleware.
// Use Handler to serve it.
func NewRouter(d Deps) *echo.Echo {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	ct := &Controller{
		sessions: d.Sessions,
		users:    d.Users,
		books:    d.Books,
		reviews:  d.Reviews,
		log:      log,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	RegisterMiddlewares(e, log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Public
	e.POST("/register", ct.Register)
	e.POST("/login", ct.Login)
	e.GET("/", ct.ListBooks)
	e.GET("/books", ct.ListBooks)
	e.GET("/books/:isbn", ct.GetBook)
	e.GET("/books/author/:author", ct.BooksByAuthor)
	e.GET("/books/title/:title", ct.BooksByTitle)
	e.GET("/books/:isbn/reviews", ct.GetReviews)

	// Session protected
	protected := echo.WrapMiddleware(d.Sessions.ProtectedMiddleware)
	e.POST("/logout", ct.Logout, protected)
	e.PUT("/reviews/:isbn", ct.PutReview, protected)
	e.DELETE("/reviews/:isbn", ct.DeleteReview, protected)
	for _, path := range []string{"/reviews", "/reviews/"} {
		e.PUT(path, ct.MissingISBN, protected)
		e.DELETE(path, ct.MissingISBN, protected)
	}

	return e
}

// Handler wraps the router in the scs session middleware, which loads the session from
// the cookie before routing and saves it, setting the cookie, afterwards.
func Handler(d Deps) http.Handler {
	return d.SessionManager.LoadAndSave(NewRouter(d))
}
