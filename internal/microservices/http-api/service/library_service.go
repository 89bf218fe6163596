package service

import (
	"context"
	"fmt"
	"sort"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/navigator"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type LibraryService interface {
	List(ctx context.Context, p search.Params) (*Page[models.Library], error)
	Get(ctx context.Context, id int64) (*models.Library, error)
	Create(ctx context.Context, req dto.LibraryRequest) (*models.Library, error)
	Update(ctx context.Context, id int64, req dto.LibraryRequest) (*models.Library, error)
	Delete(ctx context.Context, id int64) error
	AddBooks(ctx context.Context, id int64, req dto.HoldingsRequest) (*models.Library, error)
	RemoveBooks(ctx context.Context, id int64, req dto.HoldingsRequest) (*models.Library, error)
	// Librarian returns nil without error when the library has none.
	Librarian(ctx context.Context, id int64) (*models.Librarian, error)
	SetLibrarian(ctx context.Context, id int64, req dto.LibrarianRequest) (*models.Librarian, error)
	BooksByName(ctx context.Context, name string) ([]models.Book, error)
	LibrarianByName(ctx context.Context, name string) (*models.Librarian, error)
}

type libraryService struct {
	libraries repository.LibraryRepository
	books     repository.BookRepository
	nav       *navigator.Navigator
}

func NewLibraryService(libraries repository.LibraryRepository, books repository.BookRepository, nav *navigator.Navigator) LibraryService {
	return &libraryService{libraries: libraries, books: books, nav: nav}
}

func (s *libraryService) List(ctx context.Context, p search.Params) (*Page[models.Library], error) {
	q := search.Compose(shared.KindLibrary, p)
	items, total, err := s.libraries.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, &items, navigator.RelBooks, navigator.RelLibrarian); err != nil {
		return nil, err
	}
	return newPage(items, total, q), nil
}

// Get returns the library with its books (authors included) and librarian.
func (s *libraryService) Get(ctx context.Context, id int64) (*models.Library, error) {
	lib, err := s.libraries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.nav.Expand(ctx, lib, navigator.RelBooksAuthor, navigator.RelLibrarian); err != nil {
		return nil, err
	}
	return lib, nil
}

func (s *libraryService) Create(ctx context.Context, req dto.LibraryRequest) (*models.Library, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ids, err := s.existingBooks(ctx, req.Books)
	if err != nil {
		return nil, err
	}
	lib := &models.Library{Name: req.Name}
	if err := s.libraries.Create(ctx, lib, ids); err != nil {
		return nil, fmt.Errorf("create library: %w", err)
	}
	return s.Get(ctx, lib.ID)
}

func (s *libraryService) Update(ctx context.Context, id int64, req dto.LibraryRequest) (*models.Library, error) {
	if _, err := s.libraries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.libraries.Update(ctx, &models.Library{ID: id, Name: req.Name}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the library; its librarian and holdings cascade.
func (s *libraryService) Delete(ctx context.Context, id int64) error {
	return s.libraries.Delete(ctx, id)
}

func (s *libraryService) AddBooks(ctx context.Context, id int64, req dto.HoldingsRequest) (*models.Library, error) {
	if _, err := s.libraries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ids, err := s.existingBooks(ctx, req.Books)
	if err != nil {
		return nil, err
	}
	if err := s.libraries.AddBooks(ctx, id, ids); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *libraryService) RemoveBooks(ctx context.Context, id int64, req dto.HoldingsRequest) (*models.Library, error) {
	if _, err := s.libraries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.libraries.RemoveBooks(ctx, id, req.Books); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *libraryService) Librarian(ctx context.Context, id int64) (*models.Librarian, error) {
	if _, err := s.libraries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.nav.LibrarianFor(ctx, id)
}

func (s *libraryService) SetLibrarian(ctx context.Context, id int64, req dto.LibrarianRequest) (*models.Librarian, error) {
	if _, err := s.libraries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l := &models.Librarian{Name: req.Name, LibraryID: id}
	if err := s.libraries.SetLibrarian(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *libraryService) BooksByName(ctx context.Context, name string) ([]models.Book, error) {
	lib, err := s.libraries.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	libs := []models.Library{*lib}
	if err := s.nav.ExpandLibraryBooks(ctx, libs, true); err != nil {
		return nil, err
	}
	return libs[0].Books, nil
}

func (s *libraryService) LibrarianByName(ctx context.Context, name string) (*models.Librarian, error) {
	lib, err := s.libraries.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.nav.LibrarianFor(ctx, lib.ID)
}

// existingBooks dedupes ids and fails on the first one that names no book.
func (s *libraryService) existingBooks(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	uniq := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			uniq = append(uniq, id)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	found, err := s.books.ExistingIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	if len(found) == len(uniq) {
		return uniq, nil
	}
	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	for _, id := range uniq {
		if _, ok := have[id]; !ok {
			return nil, shared.NewValidationError("books", fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id))
		}
	}
	return uniq, nil
}
