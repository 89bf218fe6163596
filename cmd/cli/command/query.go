package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bookhub/database/seed"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/shared"
)

func newBooksByAuthorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "books-by-author NAME",
		Short:   "List the books of an author",
		Example: `  bookhub books-by-author "Chinua Achebe"`,
		Args:    cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			books, err := e.services.Authors.BooksByName(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			printBooks(cmd.OutOrStdout(), fmt.Sprintf("Books by %s", args[0]), books)
			return nil
		}),
	}
}

func newBooksInLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "books-in-library NAME",
		Short:   "List the books a library holds",
		Example: `  bookhub books-in-library "City Central Library"`,
		Args:    cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			books, err := e.services.Library.BooksByName(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			printBooks(cmd.OutOrStdout(), fmt.Sprintf("Books in %s", args[0]), books)
			return nil
		}),
	}
}

func newLibrarianForLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "librarian-for-library NAME",
		Short:   "Show who runs a library",
		Example: `  bookhub librarian-for-library "University Library"`,
		Args:    cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			librarian, err := e.services.Library.LibrarianByName(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			printLibrarian(cmd.OutOrStdout(), args[0], librarian)
			return nil
		}),
	}
}

func printBooks(w io.Writer, title string, books []models.Book) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(books))
	fmt.Fprintln(w, strings.Repeat("─", 50))
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found")
		return
	}
	for i, b := range books {
		author := "unknown"
		if b.Author != nil {
			author = b.Author.Name
		}
		fmt.Fprintf(w, "%d. %s (%d) by %s\n", i+1, b.Title, b.PublicationYear, author)
	}
}

func printLibrarian(w io.Writer, library string, l *models.Librarian) {
	if l == nil {
		fmt.Fprintf(w, "%s has no librarian\n", library)
		return
	}
	fmt.Fprintf(w, "%s is run by %s\n", library, l.Name)
}

func printSeedResult(w io.Writer, res seed.Result) {
	if res.Total() == 0 {
		fmt.Fprintln(w, "Demo data already present, nothing created")
		return
	}
	fmt.Fprintf(w, "Created %d authors, %d books, %d libraries, %d librarians, %d holdings\n",
		res.Authors, res.Books, res.Libraries, res.Librarians, res.Holdings)
}

// describe turns taxonomy errors into messages fit for a terminal.
func describe(err error) error {
	var nf *shared.NotFoundError
	var ve *shared.ValidationError
	switch {
	case errors.As(err, &nf):
		return fmt.Errorf("no %s named %v", nf.Kind, nf.ID)
	case errors.As(err, &ve):
		lines := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f.Field, f.Reason))
		}
		return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
	default:
		return err
	}
}
