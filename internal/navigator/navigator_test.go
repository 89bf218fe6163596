package navigator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhub/internal/microservices/http-api/models"
)

// fakeStore serves fixed rows and counts calls per method.
type fakeStore struct {
	mu    sync.Mutex
	calls map[string]int
	fail  error

	authors    map[int64]models.Author
	books      []models.Book
	holdings   []models.LibraryBook
	libraries  map[int64]models.Library
	librarians map[int64]models.Librarian
	postTags   []models.PostTag
	tags       map[int64]models.Tag
	posts      map[int64]models.Post
	users      map[string]models.User
}

func (f *fakeStore) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
	return f.fail
}

func (f *fakeStore) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) Authors(_ context.Context, ids []int64) (map[int64]models.Author, error) {
	if err := f.hit("Authors"); err != nil {
		return nil, err
	}
	out := map[int64]models.Author{}
	for _, id := range ids {
		if a, ok := f.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeStore) BooksByAuthor(_ context.Context, ids []int64) (map[int64][]models.Book, error) {
	if err := f.hit("BooksByAuthor"); err != nil {
		return nil, err
	}
	out := map[int64][]models.Book{}
	for _, id := range ids {
		for _, b := range f.books {
			if b.AuthorID == id {
				out[id] = append(out[id], b)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) BooksByLibrary(_ context.Context, ids []int64) (map[int64][]models.Book, error) {
	if err := f.hit("BooksByLibrary"); err != nil {
		return nil, err
	}
	out := map[int64][]models.Book{}
	for _, id := range ids {
		for _, h := range f.holdings {
			if h.LibraryID != id {
				continue
			}
			for _, b := range f.books {
				if b.ID == h.BookID {
					out[id] = append(out[id], b)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeStore) LibrariesByBook(_ context.Context, ids []int64) (map[int64][]models.Library, error) {
	if err := f.hit("LibrariesByBook"); err != nil {
		return nil, err
	}
	out := map[int64][]models.Library{}
	for _, id := range ids {
		for _, h := range f.holdings {
			if h.BookID == id {
				out[id] = append(out[id], f.libraries[h.LibraryID])
			}
		}
	}
	return out, nil
}

func (f *fakeStore) LibrarianByLibrary(_ context.Context, ids []int64) (map[int64]models.Librarian, error) {
	if err := f.hit("LibrarianByLibrary"); err != nil {
		return nil, err
	}
	out := map[int64]models.Librarian{}
	for _, id := range ids {
		if l, ok := f.librarians[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (f *fakeStore) TagsByPost(_ context.Context, ids []int64) (map[int64][]models.Tag, error) {
	if err := f.hit("TagsByPost"); err != nil {
		return nil, err
	}
	out := map[int64][]models.Tag{}
	for _, id := range ids {
		for _, l := range f.postTags {
			if l.PostID == id {
				out[id] = append(out[id], f.tags[l.TagID])
			}
		}
	}
	return out, nil
}

func (f *fakeStore) PostsByTag(_ context.Context, ids []int64) (map[int64][]models.Post, error) {
	if err := f.hit("PostsByTag"); err != nil {
		return nil, err
	}
	out := map[int64][]models.Post{}
	for _, id := range ids {
		for _, l := range f.postTags {
			if l.TagID == id {
				out[id] = append(out[id], f.posts[l.PostID])
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Users(_ context.Context, ids []string) (map[string]models.User, error) {
	if err := f.hit("Users"); err != nil {
		return nil, err
	}
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func catalogStore() *fakeStore {
	return &fakeStore{
		authors: map[int64]models.Author{
			1: {ID: 1, Name: "Ursula K. Le Guin"},
			2: {ID: 2, Name: "Octavia Butler"},
		},
		books: []models.Book{
			{ID: 10, Title: "A Wizard of Earthsea", PublicationYear: 1968, AuthorID: 1},
			{ID: 11, Title: "The Dispossessed", PublicationYear: 1974, AuthorID: 1},
			{ID: 12, Title: "Kindred", PublicationYear: 1979, AuthorID: 2},
		},
		holdings: []models.LibraryBook{
			{LibraryID: 100, BookID: 10},
			{LibraryID: 100, BookID: 12},
			{LibraryID: 101, BookID: 12},
		},
		libraries: map[int64]models.Library{
			100: {ID: 100, Name: "Central"},
			101: {ID: 101, Name: "Harbor Branch"},
		},
		librarians: map[int64]models.Librarian{
			100: {ID: 7, Name: "Ada", LibraryID: 100},
		},
	}
}

func blogStore() *fakeStore {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeStore{
		tags: map[int64]models.Tag{
			1: {ID: 1, Name: "Go", Slug: "go"},
			2: {ID: 2, Name: "Databases", Slug: "databases"},
		},
		posts: map[int64]models.Post{
			20: {ID: 20, Title: "older", PublishedDate: now.Add(-time.Hour), AuthorID: "u1"},
			21: {ID: 21, Title: "newer", PublishedDate: now, AuthorID: "u2"},
		},
		postTags: []models.PostTag{
			{PostID: 20, TagID: 1},
			{PostID: 21, TagID: 1},
			{PostID: 21, TagID: 2},
		},
		users: map[string]models.User{
			"u1": {ID: "u1", Username: "alice"},
			"u2": {ID: "u2", Username: "bob"},
		},
	}
}

func TestExpandBookAuthors(t *testing.T) {
	ctx := context.Background()

	t.Run("one lookup for many books", func(t *testing.T) {
		store := catalogStore()
		nav := New(store)
		books := append([]models.Book(nil), store.books...)

		require.NoError(t, nav.ExpandBookAuthors(ctx, books))

		assert.Equal(t, 1, store.count("Authors"))
		assert.Equal(t, "Ursula K. Le Guin", books[0].Author.Name)
		assert.Equal(t, "Ursula K. Le Guin", books[1].Author.Name)
		assert.Equal(t, "Octavia Butler", books[2].Author.Name)
	})

	t.Run("empty input skips the store", func(t *testing.T) {
		store := catalogStore()
		require.NoError(t, New(store).ExpandBookAuthors(ctx, nil))
		assert.Equal(t, 0, store.count("Authors"))
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		store := catalogStore()
		store.fail = errors.New("connection reset")
		err := New(store).ExpandBookAuthors(ctx, []models.Book{{ID: 1, AuthorID: 1}})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.fail)
	})
}

func TestBooksForAuthors(t *testing.T) {
	store := catalogStore()
	nav := New(store)
	authors := []models.Author{{ID: 1}, {ID: 2}, {ID: 3}}

	require.NoError(t, nav.BooksForAuthors(context.Background(), authors))

	assert.Equal(t, 1, store.count("BooksByAuthor"))
	require.Len(t, authors[0].Books, 2)
	assert.Equal(t, int64(10), authors[0].Books[0].ID)
	assert.Equal(t, int64(11), authors[0].Books[1].ID)
	assert.Len(t, authors[1].Books, 1)
	assert.NotNil(t, authors[2].Books)
	assert.Empty(t, authors[2].Books)
}

func TestBooksOf(t *testing.T) {
	store := catalogStore()
	books, err := New(store).BooksOf(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Kindred", books[0].Title)

	books, err = New(store).BooksOf(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestExpandLibraryBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("books only", func(t *testing.T) {
		store := catalogStore()
		libs := []models.Library{{ID: 100}, {ID: 101}}

		require.NoError(t, New(store).ExpandLibraryBooks(ctx, libs, false))

		assert.Equal(t, 1, store.count("BooksByLibrary"))
		assert.Equal(t, 0, store.count("Authors"))
		assert.Len(t, libs[0].Books, 2)
		assert.Len(t, libs[1].Books, 1)
		assert.Nil(t, libs[0].Books[0].Author)
	})

	t.Run("books with authors stays constant", func(t *testing.T) {
		store := catalogStore()
		libs := []models.Library{{ID: 100}, {ID: 101}}

		require.NoError(t, New(store).ExpandLibraryBooks(ctx, libs, true))

		assert.Equal(t, 1, store.count("BooksByLibrary"))
		assert.Equal(t, 1, store.count("Authors"))
		assert.Equal(t, "Ursula K. Le Guin", libs[0].Books[0].Author.Name)
		assert.Equal(t, "Octavia Butler", libs[0].Books[1].Author.Name)
		assert.Equal(t, "Octavia Butler", libs[1].Books[0].Author.Name)
	})
}

func TestExpandBookLibraries(t *testing.T) {
	store := catalogStore()
	books := []models.Book{{ID: 10}, {ID: 11}, {ID: 12}}

	require.NoError(t, New(store).ExpandBookLibraries(context.Background(), books))

	assert.Equal(t, 1, store.count("LibrariesByBook"))
	assert.Len(t, books[0].Libraries, 1)
	assert.Empty(t, books[1].Libraries)
	assert.Len(t, books[2].Libraries, 2)
}

func TestLibrarians(t *testing.T) {
	ctx := context.Background()
	store := catalogStore()
	nav := New(store)

	libs := []models.Library{{ID: 100}, {ID: 101}}
	require.NoError(t, nav.ExpandLibrarians(ctx, libs))
	assert.Equal(t, 1, store.count("LibrarianByLibrary"))
	require.NotNil(t, libs[0].Librarian)
	assert.Equal(t, "Ada", libs[0].Librarian.Name)
	assert.Nil(t, libs[1].Librarian)

	l, err := nav.LibrarianFor(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, int64(7), l.ID)

	l, err = nav.LibrarianFor(ctx, 101)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestPostRelations(t *testing.T) {
	ctx := context.Background()

	t.Run("tags and authors", func(t *testing.T) {
		store := blogStore()
		nav := New(store)
		posts := []models.Post{store.posts[20], store.posts[21]}

		require.NoError(t, nav.ExpandPostTags(ctx, posts))
		require.NoError(t, nav.ExpandPostAuthors(ctx, posts))

		assert.Equal(t, 1, store.count("TagsByPost"))
		assert.Equal(t, 1, store.count("Users"))
		assert.Len(t, posts[0].Tags, 1)
		assert.Len(t, posts[1].Tags, 2)
		assert.Equal(t, "alice", posts[0].Author.Username)
		assert.Equal(t, "bob", posts[1].Author.Username)
	})

	t.Run("posts for tag newest first", func(t *testing.T) {
		store := blogStore()
		// duplicate link rows must not duplicate posts
		store.postTags = append(store.postTags, models.PostTag{PostID: 20, TagID: 1})

		posts, err := New(store).PostsForTag(ctx, 1)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, int64(21), posts[0].ID)
		assert.Equal(t, int64(20), posts[1].ID)
	})

	t.Run("comment authors", func(t *testing.T) {
		store := blogStore()
		comments := []models.Comment{
			{ID: 1, AuthorID: "u1"},
			{ID: 2, AuthorID: "u1"},
			{ID: 3, AuthorID: "u2"},
		}
		require.NoError(t, New(store).ExpandCommentAuthors(ctx, comments))
		assert.Equal(t, 1, store.count("Users"))
		assert.Equal(t, "alice", comments[1].Author.Username)
		assert.Equal(t, "bob", comments[2].Author.Username)
	})
}

func TestExpand(t *testing.T) {
	ctx := context.Background()

	t.Run("slice with several relations", func(t *testing.T) {
		store := catalogStore()
		books := append([]models.Book(nil), store.books...)

		require.NoError(t, New(store).Expand(ctx, &books, RelAuthor, RelLibraries))

		assert.Equal(t, 1, store.count("Authors"))
		assert.Equal(t, 1, store.count("LibrariesByBook"))
		assert.NotNil(t, books[2].Author)
		assert.Len(t, books[2].Libraries, 2)
	})

	t.Run("single row", func(t *testing.T) {
		store := catalogStore()
		lib := models.Library{ID: 100, Name: "Central"}

		require.NoError(t, New(store).Expand(ctx, &lib, RelBooksAuthor, RelLibrarian))

		assert.Len(t, lib.Books, 2)
		assert.NotNil(t, lib.Books[0].Author)
		require.NotNil(t, lib.Librarian)
		assert.Equal(t, "Central", lib.Name)
	})

	t.Run("books absorbed by books.author", func(t *testing.T) {
		store := catalogStore()
		libs := []models.Library{{ID: 100, Name: "Central"}}

		require.NoError(t, New(store).Expand(ctx, &libs, RelBooks, RelBooksAuthor, RelLibrarian, RelLibrarian))

		assert.Equal(t, 1, store.count("BooksByLibrary"))
		assert.Equal(t, 1, store.count("LibrarianByLibrary"))
		require.Len(t, libs[0].Books, 2)
		assert.NotNil(t, libs[0].Books[0].Author)
	})

	t.Run("unknown relation", func(t *testing.T) {
		store := catalogStore()
		authors := []models.Author{{ID: 1}}
		err := New(store).Expand(ctx, &authors, RelTags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `cannot expand "tags"`)
		assert.Equal(t, 0, store.count("TagsByPost"))
	})
}

func TestIndependent(t *testing.T) {
	assert.Equal(t, []Relation{RelBooksAuthor, RelLibrarian},
		independent([]Relation{RelBooks, RelBooksAuthor, RelLibrarian, RelBooks}))
	assert.Equal(t, []Relation{RelTags, RelAuthor}, independent([]Relation{RelTags, RelAuthor, RelTags}))
	assert.Equal(t, []Relation{RelBooks}, independent([]Relation{RelBooks}))
}
