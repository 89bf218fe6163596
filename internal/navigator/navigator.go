// Package navigator resolves relations for loaded rows.
//
// Every expansion over a collection collects the foreign keys it needs and
// asks the Store once, so expanding N rows costs the same number of store
// calls as expanding one.
package navigator

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"bookhub/internal/microservices/http-api/models"
)

// Store is the batched lookup surface the navigator needs. Every method takes
// the full key set of one relation and returns rows grouped by key.
type Store interface {
	Authors(ctx context.Context, ids []int64) (map[int64]models.Author, error)
	BooksByAuthor(ctx context.Context, authorIDs []int64) (map[int64][]models.Book, error)
	BooksByLibrary(ctx context.Context, libraryIDs []int64) (map[int64][]models.Book, error)
	LibrariesByBook(ctx context.Context, bookIDs []int64) (map[int64][]models.Library, error)
	LibrarianByLibrary(ctx context.Context, libraryIDs []int64) (map[int64]models.Librarian, error)
	TagsByPost(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error)
	PostsByTag(ctx context.Context, tagIDs []int64) (map[int64][]models.Post, error)
	Users(ctx context.Context, ids []string) (map[string]models.User, error)
}

// Relation names a traversal accepted by Expand.
type Relation string

const (
	RelAuthor      Relation = "author"
	RelBooks       Relation = "books"
	RelBooksAuthor Relation = "books.author"
	RelLibraries   Relation = "libraries"
	RelLibrarian   Relation = "librarian"
	RelTags        Relation = "tags"
	RelPosts       Relation = "posts"
)

type Navigator struct {
	store Store
}

func New(store Store) *Navigator {
	return &Navigator{store: store}
}

// ExpandBookAuthors sets Author on every book with one lookup.
func (n *Navigator) ExpandBookAuthors(ctx context.Context, books []models.Book) error {
	ids := distinct(len(books), func(i int) int64 { return books[i].AuthorID })
	if len(ids) == 0 {
		return nil
	}
	authors, err := n.store.Authors(ctx, ids)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	for i := range books {
		if a, ok := authors[books[i].AuthorID]; ok {
			books[i].Author = &a
		}
	}
	return nil
}

// BooksForAuthors sets Books (ordered by id) on every author.
func (n *Navigator) BooksForAuthors(ctx context.Context, authors []models.Author) error {
	ids := distinct(len(authors), func(i int) int64 { return authors[i].ID })
	if len(ids) == 0 {
		return nil
	}
	byAuthor, err := n.store.BooksByAuthor(ctx, ids)
	if err != nil {
		return fmt.Errorf("load books by author: %w", err)
	}
	for i := range authors {
		authors[i].Books = nonNil(byAuthor[authors[i].ID])
	}
	return nil
}

// BooksOf returns the books of one author ordered by id.
func (n *Navigator) BooksOf(ctx context.Context, authorID int64) ([]models.Book, error) {
	byAuthor, err := n.store.BooksByAuthor(ctx, []int64{authorID})
	if err != nil {
		return nil, fmt.Errorf("load books by author: %w", err)
	}
	return nonNil(byAuthor[authorID]), nil
}

// ExpandLibraryBooks sets Books on every library. With authors set, the
// authors of all those books are then loaded in one more lookup.
func (n *Navigator) ExpandLibraryBooks(ctx context.Context, libraries []models.Library, authors bool) error {
	ids := distinct(len(libraries), func(i int) int64 { return libraries[i].ID })
	if len(ids) == 0 {
		return nil
	}
	byLibrary, err := n.store.BooksByLibrary(ctx, ids)
	if err != nil {
		return fmt.Errorf("load library books: %w", err)
	}
	for i := range libraries {
		libraries[i].Books = nonNil(byLibrary[libraries[i].ID])
	}
	if !authors {
		return nil
	}

	// flatten, expand once, write back in place
	var all []models.Book
	for i := range libraries {
		all = append(all, libraries[i].Books...)
	}
	if err := n.ExpandBookAuthors(ctx, all); err != nil {
		return err
	}
	k := 0
	for i := range libraries {
		for j := range libraries[i].Books {
			libraries[i].Books[j] = all[k]
			k++
		}
	}
	return nil
}

// ExpandBookLibraries sets Libraries on every book.
func (n *Navigator) ExpandBookLibraries(ctx context.Context, books []models.Book) error {
	ids := distinct(len(books), func(i int) int64 { return books[i].ID })
	if len(ids) == 0 {
		return nil
	}
	byBook, err := n.store.LibrariesByBook(ctx, ids)
	if err != nil {
		return fmt.Errorf("load book libraries: %w", err)
	}
	for i := range books {
		books[i].Libraries = nonNil(byBook[books[i].ID])
	}
	return nil
}

// ExpandLibrarians sets Librarian on every library that has one; others stay nil.
func (n *Navigator) ExpandLibrarians(ctx context.Context, libraries []models.Library) error {
	ids := distinct(len(libraries), func(i int) int64 { return libraries[i].ID })
	if len(ids) == 0 {
		return nil
	}
	byLibrary, err := n.store.LibrarianByLibrary(ctx, ids)
	if err != nil {
		return fmt.Errorf("load librarians: %w", err)
	}
	for i := range libraries {
		if l, ok := byLibrary[libraries[i].ID]; ok {
			libraries[i].Librarian = &l
		} else {
			libraries[i].Librarian = nil
		}
	}
	return nil
}

// LibrarianFor returns the librarian of one library, or nil when it has none.
func (n *Navigator) LibrarianFor(ctx context.Context, libraryID int64) (*models.Librarian, error) {
	byLibrary, err := n.store.LibrarianByLibrary(ctx, []int64{libraryID})
	if err != nil {
		return nil, fmt.Errorf("load librarian: %w", err)
	}
	l, ok := byLibrary[libraryID]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ExpandPostTags sets Tags on every post.
func (n *Navigator) ExpandPostTags(ctx context.Context, posts []models.Post) error {
	ids := distinct(len(posts), func(i int) int64 { return posts[i].ID })
	if len(ids) == 0 {
		return nil
	}
	byPost, err := n.store.TagsByPost(ctx, ids)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	for i := range posts {
		posts[i].Tags = nonNil(byPost[posts[i].ID])
	}
	return nil
}

// PostsForTag returns the posts carrying a tag, newest first, each once.
func (n *Navigator) PostsForTag(ctx context.Context, tagID int64) ([]models.Post, error) {
	byTag, err := n.store.PostsByTag(ctx, []int64{tagID})
	if err != nil {
		return nil, fmt.Errorf("load tag posts: %w", err)
	}
	return dedupePosts(byTag[tagID]), nil
}

// ExpandPostAuthors sets Author on every post.
func (n *Navigator) ExpandPostAuthors(ctx context.Context, posts []models.Post) error {
	users, err := n.users(ctx, len(posts), func(i int) string { return posts[i].AuthorID })
	if err != nil || users == nil {
		return err
	}
	for i := range posts {
		if u, ok := users[posts[i].AuthorID]; ok {
			posts[i].Author = &u
		}
	}
	return nil
}

// ExpandCommentAuthors sets Author on every comment.
func (n *Navigator) ExpandCommentAuthors(ctx context.Context, comments []models.Comment) error {
	users, err := n.users(ctx, len(comments), func(i int) string { return comments[i].AuthorID })
	if err != nil || users == nil {
		return err
	}
	for i := range comments {
		if u, ok := users[comments[i].AuthorID]; ok {
			comments[i].Author = &u
		}
	}
	return nil
}

func (n *Navigator) users(ctx context.Context, count int, key func(int) string) (map[string]models.User, error) {
	seen := make(map[string]struct{}, count)
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := key(i)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := n.store.Users(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// Expand populates relations on target, which is a pointer to a model or to a
// slice of models. Independent relations load concurrently.
func (n *Navigator) Expand(ctx context.Context, target any, relations ...Relation) error {
	switch v := target.(type) {
	case *models.Book:
		s := []models.Book{*v}
		if err := n.Expand(ctx, &s, relations...); err != nil {
			return err
		}
		*v = s[0]
		return nil
	case *models.Author:
		s := []models.Author{*v}
		if err := n.Expand(ctx, &s, relations...); err != nil {
			return err
		}
		*v = s[0]
		return nil
	case *models.Library:
		s := []models.Library{*v}
		if err := n.Expand(ctx, &s, relations...); err != nil {
			return err
		}
		*v = s[0]
		return nil
	case *models.Post:
		s := []models.Post{*v}
		if err := n.Expand(ctx, &s, relations...); err != nil {
			return err
		}
		*v = s[0]
		return nil
	case *models.Comment:
		s := []models.Comment{*v}
		if err := n.Expand(ctx, &s, relations...); err != nil {
			return err
		}
		*v = s[0]
		return nil
	}

	relations = independent(relations)
	steps := make([]func(context.Context) error, 0, len(relations))
	for _, rel := range relations {
		step, err := n.step(target, rel)
		if err != nil {
			return err
		}
		steps = append(steps, step)
	}
	if len(steps) == 1 {
		return steps[0](ctx)
	}

	// each step writes a different field of the rows
	g, gctx := errgroup.WithContext(ctx)
	for _, step := range steps {
		step := step
		g.Go(func() error { return step(gctx) })
	}
	return g.Wait()
}

// independent drops repeated relations, and "books" when "books.author"
// loads the same field, so no two steps write one field.
func independent(relations []Relation) []Relation {
	seen := make(map[Relation]bool, len(relations))
	for _, rel := range relations {
		seen[rel] = true
	}
	out := make([]Relation, 0, len(relations))
	for _, rel := range relations {
		if rel == RelBooks && seen[RelBooksAuthor] {
			continue
		}
		if !seen[rel] {
			continue
		}
		seen[rel] = false
		out = append(out, rel)
	}
	return out
}

func (n *Navigator) step(target any, rel Relation) (func(context.Context) error, error) {
	switch v := target.(type) {
	case *[]models.Book:
		switch rel {
		case RelAuthor:
			return func(ctx context.Context) error { return n.ExpandBookAuthors(ctx, *v) }, nil
		case RelLibraries:
			return func(ctx context.Context) error { return n.ExpandBookLibraries(ctx, *v) }, nil
		}
	case *[]models.Author:
		if rel == RelBooks {
			return func(ctx context.Context) error { return n.BooksForAuthors(ctx, *v) }, nil
		}
	case *[]models.Library:
		switch rel {
		case RelBooks:
			return func(ctx context.Context) error { return n.ExpandLibraryBooks(ctx, *v, false) }, nil
		case RelBooksAuthor:
			return func(ctx context.Context) error { return n.ExpandLibraryBooks(ctx, *v, true) }, nil
		case RelLibrarian:
			return func(ctx context.Context) error { return n.ExpandLibrarians(ctx, *v) }, nil
		}
	case *[]models.Post:
		switch rel {
		case RelTags:
			return func(ctx context.Context) error { return n.ExpandPostTags(ctx, *v) }, nil
		case RelAuthor:
			return func(ctx context.Context) error { return n.ExpandPostAuthors(ctx, *v) }, nil
		}
	case *[]models.Comment:
		if rel == RelAuthor {
			return func(ctx context.Context) error { return n.ExpandCommentAuthors(ctx, *v) }, nil
		}
	}
	return nil, fmt.Errorf("navigator: cannot expand %q on %T", rel, target)
}

func distinct(count int, key func(int) int64) []int64 {
	seen := make(map[int64]struct{}, count)
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		id := key(i)
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func dedupePosts(posts []models.Post) []models.Post {
	seen := make(map[int64]struct{}, len(posts))
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedDate.After(out[j].PublishedDate)
	})
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
