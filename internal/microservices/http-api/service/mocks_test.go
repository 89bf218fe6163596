package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) List(ctx context.Context, q search.Query) ([]models.Book, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) AllByTitle(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthorRepository mocks the AuthorRepository interface
type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) List(ctx context.Context, q search.Query) ([]models.Author, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Author), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) FindByName(ctx context.Context, name string) (*models.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) Update(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLibraryRepository mocks the LibraryRepository interface
type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) List(ctx context.Context, q search.Query) ([]models.Library, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Library), args.Get(1).(int64), args.Error(2)
}

func (m *MockLibraryRepository) GetByID(ctx context.Context, id int64) (*models.Library, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Library), args.Error(1)
}

func (m *MockLibraryRepository) FindByName(ctx context.Context, name string) (*models.Library, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Library), args.Error(1)
}

func (m *MockLibraryRepository) Create(ctx context.Context, library *models.Library, bookIDs []int64) error {
	args := m.Called(ctx, library, bookIDs)
	return args.Error(0)
}

func (m *MockLibraryRepository) Update(ctx context.Context, library *models.Library) error {
	args := m.Called(ctx, library)
	return args.Error(0)
}

func (m *MockLibraryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLibraryRepository) AddBooks(ctx context.Context, libraryID int64, bookIDs []int64) error {
	args := m.Called(ctx, libraryID, bookIDs)
	return args.Error(0)
}

func (m *MockLibraryRepository) RemoveBooks(ctx context.Context, libraryID int64, bookIDs []int64) error {
	args := m.Called(ctx, libraryID, bookIDs)
	return args.Error(0)
}

func (m *MockLibraryRepository) SetLibrarian(ctx context.Context, librarian *models.Librarian) error {
	args := m.Called(ctx, librarian)
	return args.Error(0)
}

// MockPostRepository mocks the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, q search.Query) ([]models.Post, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post, tags []string) error {
	args := m.Called(ctx, post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post, tags []string) error {
	args := m.Called(ctx, post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) List(ctx context.Context, q search.Query) ([]models.Comment, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User, bio string) error {
	args := m.Called(ctx, user, bio)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAccess(ctx context.Context, id, role string, permissions []string) error {
	args := m.Called(ctx, id, role, permissions)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenBlacklist mocks the TokenBlacklist interface
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// stubStore is a navigator store over fixed rows.
type stubStore struct {
	authors    map[int64]models.Author
	books      []models.Book
	holdings   []models.LibraryBook
	libraries  map[int64]models.Library
	librarians map[int64]models.Librarian
	postTags   map[int64][]models.Tag
	tagPosts   map[int64][]models.Post
	users      map[string]models.User
}

func (s *stubStore) Authors(_ context.Context, ids []int64) (map[int64]models.Author, error) {
	out := map[int64]models.Author{}
	for _, id := range ids {
		if a, ok := s.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *stubStore) BooksByAuthor(_ context.Context, ids []int64) (map[int64][]models.Book, error) {
	out := map[int64][]models.Book{}
	for _, id := range ids {
		for _, b := range s.books {
			if b.AuthorID == id {
				out[id] = append(out[id], b)
			}
		}
	}
	return out, nil
}

func (s *stubStore) BooksByLibrary(_ context.Context, ids []int64) (map[int64][]models.Book, error) {
	out := map[int64][]models.Book{}
	for _, id := range ids {
		for _, h := range s.holdings {
			if h.LibraryID != id {
				continue
			}
			for _, b := range s.books {
				if b.ID == h.BookID {
					out[id] = append(out[id], b)
				}
			}
		}
	}
	return out, nil
}

func (s *stubStore) LibrariesByBook(_ context.Context, ids []int64) (map[int64][]models.Library, error) {
	out := map[int64][]models.Library{}
	for _, id := range ids {
		for _, h := range s.holdings {
			if h.BookID == id {
				out[id] = append(out[id], s.libraries[h.LibraryID])
			}
		}
	}
	return out, nil
}

func (s *stubStore) LibrarianByLibrary(_ context.Context, ids []int64) (map[int64]models.Librarian, error) {
	out := map[int64]models.Librarian{}
	for _, id := range ids {
		if l, ok := s.librarians[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (s *stubStore) TagsByPost(_ context.Context, ids []int64) (map[int64][]models.Tag, error) {
	out := map[int64][]models.Tag{}
	for _, id := range ids {
		out[id] = s.postTags[id]
	}
	return out, nil
}

func (s *stubStore) PostsByTag(_ context.Context, ids []int64) (map[int64][]models.Post, error) {
	out := map[int64][]models.Post{}
	for _, id := range ids {
		out[id] = s.tagPosts[id]
	}
	return out, nil
}

func (s *stubStore) Users(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// MockTagRepository mocks the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context, q search.Query) ([]models.Tag, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

// MockShelfBookRepository mocks the ShelfBookRepository interface
type MockShelfBookRepository struct {
	mock.Mock
}

func (m *MockShelfBookRepository) List(ctx context.Context, q search.Query) ([]models.ShelfBook, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ShelfBook), args.Get(1).(int64), args.Error(2)
}

func (m *MockShelfBookRepository) GetByID(ctx context.Context, id int64) (*models.ShelfBook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShelfBook), args.Error(1)
}

func (m *MockShelfBookRepository) Create(ctx context.Context, book *models.ShelfBook) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockShelfBookRepository) Update(ctx context.Context, book *models.ShelfBook) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockShelfBookRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
