package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trussworks/bookclub/pkg/client"
)

func newBooksCmd() *cobra.Command {
	var (
		server  string
		isbn    string
		author  string
		title   string
		reviews bool
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Query the catalog of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reviews && isbn == "" {
				return errors.New("--reviews needs --isbn")
			}
			c := client.New(server, nil)
			ctx := cmd.Context()

			var (
				result interface{}
				err    error
			)
			switch {
			case isbn != "" && reviews:
				result, err = c.Reviews(ctx, isbn)
			case isbn != "":
				result, err = c.BookByISBN(ctx, isbn)
			case author != "":
				result, err = c.BooksByAuthor(ctx, author)
			case title != "":
				result, err = c.BooksByTitle(ctx, title)
			default:
				result, err = c.AllBooks(ctx)
			}
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("nothing found: %w", err)
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&server, "server", "http://localhost:5000", "base URL of the server")
	flags.StringVar(&isbn, "isbn", "", "look up one book")
	flags.StringVar(&author, "author", "", "books by this exact author")
	flags.StringVar(&title, "title", "", "books with this exact title")
	flags.BoolVar(&reviews, "reviews", false, "with --isbn, list the book's reviews")
	cmd.MarkFlagsMutuallyExclusive("isbn", "author", "title")

	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
