// Package client calls the public catalog endpoints of a running book club server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trussworks/bookclub/pkg/domain"
)

var defaultHTTPClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Client is a catalog client
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the server at baseURL. A nil httpClient uses a default with timeouts.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = defaultHTTPClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// StatusError is a non 2xx answer from the server
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Code == http.StatusNotFound
}

func (c *Client) AllBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := c.get(ctx, "/books", &books)
	return books, err
}

func (c *Client) BookByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	var book domain.Book
	err := c.get(ctx, "/books/"+url.PathEscape(isbn), &book)
	return book, err
}

func (c *Client) BooksByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	var books []domain.Book
	err := c.get(ctx, "/books/author/"+url.PathEscape(author), &books)
	return books, err
}

func (c *Client) BooksByTitle(ctx context.Context, title string) ([]domain.Book, error) {
	var books []domain.Book
	err := c.get(ctx, "/books/title/"+url.PathEscape(title), &books)
	return books, err
}

func (c *Client) Reviews(ctx context.Context, isbn string) ([]domain.Review, error) {
	var body struct {
		Reviews []domain.Review `json:"reviews"`
	}
	err := c.get(ctx, "/books/"+url.PathEscape(isbn)+"/reviews", &body)
	return body.Reviews, err
}

func (c *Client) get(ctx context.Context, path string, into interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Code: resp.StatusCode, Message: body.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
