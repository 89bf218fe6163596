package navigator

import (
	"context"

	"gorm.io/gorm"

	"bookhub/internal/microservices/http-api/models"
)

// GormStore answers navigator lookups with one IN query per key set, plus one
// link-table query for the many-to-many relations.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Authors(ctx context.Context, ids []int64) (map[int64]models.Author, error) {
	var rows []models.Author
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]models.Author, len(rows))
	for _, a := range rows {
		out[a.ID] = a
	}
	return out, nil
}

func (s *GormStore) BooksByAuthor(ctx context.Context, authorIDs []int64) (map[int64][]models.Book, error) {
	var rows []models.Book
	if err := s.db.WithContext(ctx).Where("author_id IN ?", authorIDs).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Book, len(authorIDs))
	for _, b := range rows {
		out[b.AuthorID] = append(out[b.AuthorID], b)
	}
	return out, nil
}

func (s *GormStore) BooksByLibrary(ctx context.Context, libraryIDs []int64) (map[int64][]models.Book, error) {
	var links []models.LibraryBook
	if err := s.db.WithContext(ctx).Where("library_id IN ?", libraryIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Book, len(libraryIDs))
	if len(links) == 0 {
		return out, nil
	}

	bookIDs := distinct(len(links), func(i int) int64 { return links[i].BookID })
	var books []models.Book
	if err := s.db.WithContext(ctx).Where("id IN ?", bookIDs).Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	// keep book id order inside each library
	holders := group(len(links), func(i int) (int64, int64) { return links[i].BookID, links[i].LibraryID })
	for _, b := range books {
		for _, libraryID := range holders[b.ID] {
			out[libraryID] = append(out[libraryID], b)
		}
	}
	return out, nil
}

func (s *GormStore) LibrariesByBook(ctx context.Context, bookIDs []int64) (map[int64][]models.Library, error) {
	var links []models.LibraryBook
	if err := s.db.WithContext(ctx).Where("book_id IN ?", bookIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Library, len(bookIDs))
	if len(links) == 0 {
		return out, nil
	}

	libraryIDs := distinct(len(links), func(i int) int64 { return links[i].LibraryID })
	var libraries []models.Library
	if err := s.db.WithContext(ctx).Where("id IN ?", libraryIDs).Order("id").Find(&libraries).Error; err != nil {
		return nil, err
	}
	held := group(len(links), func(i int) (int64, int64) { return links[i].LibraryID, links[i].BookID })
	for _, lib := range libraries {
		for _, bookID := range held[lib.ID] {
			out[bookID] = append(out[bookID], lib)
		}
	}
	return out, nil
}

func (s *GormStore) LibrarianByLibrary(ctx context.Context, libraryIDs []int64) (map[int64]models.Librarian, error) {
	var rows []models.Librarian
	if err := s.db.WithContext(ctx).Where("library_id IN ?", libraryIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]models.Librarian, len(rows))
	for _, l := range rows {
		out[l.LibraryID] = l
	}
	return out, nil
}

func (s *GormStore) TagsByPost(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error) {
	var links []models.PostTag
	if err := s.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Tag, len(postIDs))
	if len(links) == 0 {
		return out, nil
	}

	tagIDs := distinct(len(links), func(i int) int64 { return links[i].TagID })
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", tagIDs).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	tagged := group(len(links), func(i int) (int64, int64) { return links[i].TagID, links[i].PostID })
	for _, t := range tags {
		for _, postID := range tagged[t.ID] {
			out[postID] = append(out[postID], t)
		}
	}
	return out, nil
}

func (s *GormStore) PostsByTag(ctx context.Context, tagIDs []int64) (map[int64][]models.Post, error) {
	var links []models.PostTag
	if err := s.db.WithContext(ctx).Where("tag_id IN ?", tagIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Post, len(tagIDs))
	if len(links) == 0 {
		return out, nil
	}

	postIDs := distinct(len(links), func(i int) int64 { return links[i].PostID })
	var posts []models.Post
	if err := s.db.WithContext(ctx).Where("id IN ?", postIDs).
		Order("published_date DESC").Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	tagsOf := group(len(links), func(i int) (int64, int64) { return links[i].PostID, links[i].TagID })
	for _, p := range posts {
		for _, tagID := range tagsOf[p.ID] {
			out[tagID] = append(out[tagID], p)
		}
	}
	return out, nil
}

func (s *GormStore) Users(ctx context.Context, ids []string) (map[string]models.User, error) {
	var rows []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.User, len(rows))
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

// group indexes link rows by the id of the fetched row, listing the ids on
// the other side in link order.
func group(count int, pair func(int) (row, other int64)) map[int64][]int64 {
	out := make(map[int64][]int64, count)
	for i := 0; i < count; i++ {
		row, other := pair(i)
		out[row] = append(out[row], other)
	}
	return out
}
