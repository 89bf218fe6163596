package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

type BookService interface {
	List(ctx context.Context, p search.Params) (*Page[models.Book], error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Libraries(ctx context.Context, id int64) ([]models.Library, error)
	Create(ctx context.Context, req dto.BookRequest) (*models.Book, error)
	Update(ctx context.Context, id int64, req dto.BookRequest) (*models.Book, error)
	Patch(ctx context.Context, id int64, patch dto.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	// Catalog renders every book as "Title by Author", ordered by title.
	Catalog(ctx context.Context) ([]string, error)
}

type bookService struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
	nav     *navigator.Navigator
	now     func() time.Time
}

// NewBookService wires the book use cases; a nil now uses time.Now.
func NewBookService(books repository.BookRepository, authors repository.AuthorRepository, nav *navigator.Navigator, now func() time.Time) BookService {
	if now == nil {
		now = time.Now
	}
	return &bookService{books: books, authors: authors, nav: nav, now: now}
}

func (s *bookService) List(ctx context.Context, p search.Params) (*Page[models.Book], error) {
	q := search.Compose(shared.KindBook, p)
	items, total, err := s.books.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.ExpandBookAuthors(ctx, items); err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, b, navigator.RelAuthor); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) Libraries(ctx context.Context, id int64) ([]models.Library, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, b, navigator.RelLibraries); err != nil {
		return nil, err
	}
	return b.Libraries, nil
}

func (s *bookService) Create(ctx context.Context, req dto.BookRequest) (*models.Book, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}
	b := req.Model()
	if err := s.books.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req dto.BookRequest) (*models.Book, error) {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.save(ctx, id, req)
}

func (s *bookService) Patch(ctx context.Context, id int64, patch dto.BookPatch) (*models.Book, error) {
	current, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, id, patch.Merge(current))
}

func (s *bookService) save(ctx context.Context, id int64, req dto.BookRequest) (*models.Book, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}
	b := req.Model()
	b.ID = id
	if err := s.books.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// check validates the payload, then confirms the author exists.
func (s *bookService) check(ctx context.Context, req dto.BookRequest) error {
	if err := req.ValidateAt(s.now); err != nil {
		return err
	}
	if _, err := s.authors.GetByID(ctx, req.Author); err != nil {
		var nf *shared.NotFoundError
		if errors.As(err, &nf) {
			return shared.NewValidationError("author", invalidChoice)
		}
		return err
	}
	return nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

func (s *bookService) Catalog(ctx context.Context) ([]string, error) {
	books, err := s.books.AllByTitle(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.nav.ExpandBookAuthors(ctx, books); err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(books))
	for _, b := range books {
		author := "unknown"
		if b.Author != nil {
			author = b.Author.Name
		}
		lines = append(lines, b.Title+" by "+author)
	}
	return lines, nil
}
