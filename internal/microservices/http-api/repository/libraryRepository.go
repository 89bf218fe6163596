package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

type LibraryRepository interface {
	List(ctx context.Context, q search.Query) ([]models.Library, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Library, error)
	FindByName(ctx context.Context, name string) (*models.Library, error)
	Create(ctx context.Context, library *models.Library, bookIDs []int64) error
	Update(ctx context.Context, library *models.Library) error
	Delete(ctx context.Context, id int64) error
	AddBooks(ctx context.Context, libraryID int64, bookIDs []int64) error
	RemoveBooks(ctx context.Context, libraryID int64, bookIDs []int64) error
	SetLibrarian(ctx context.Context, librarian *models.Librarian) error
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) List(ctx context.Context, q search.Query) ([]models.Library, int64, error) {
	return list[models.Library](ctx, r.db, q)
}

func (r *libraryRepository) GetByID(ctx context.Context, id int64) (*models.Library, error) {
	var lib models.Library
	if err := r.db.WithContext(ctx).First(&lib, id).Error; err != nil {
		return nil, translate(err, shared.KindLibrary, id)
	}
	return &lib, nil
}

func (r *libraryRepository) FindByName(ctx context.Context, name string) (*models.Library, error) {
	var lib models.Library
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&lib).Error; err != nil {
		return nil, translate(err, shared.KindLibrary, name)
	}
	return &lib, nil
}

// Create inserts the library and its initial holdings in one transaction.
func (r *libraryRepository) Create(ctx context.Context, library *models.Library, bookIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Books", "Librarian").Create(library).Error; err != nil {
			return translate(err, shared.KindLibrary, library.ID)
		}
		return link(tx, library.ID, bookIDs)
	})
}

func (r *libraryRepository) Update(ctx context.Context, library *models.Library) error {
	res := r.db.WithContext(ctx).Model(&models.Library{ID: library.ID}).Update("name", library.Name)
	return mustAffect(res, shared.KindLibrary, library.ID)
}

// Delete removes the library; holdings and the librarian cascade.
func (r *libraryRepository) Delete(ctx context.Context, id int64) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Library{}, id), shared.KindLibrary, id)
}

// AddBooks links books to a library. Links that already exist are kept as is.
func (r *libraryRepository) AddBooks(ctx context.Context, libraryID int64, bookIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return link(tx, libraryID, bookIDs)
	})
}

func (r *libraryRepository) RemoveBooks(ctx context.Context, libraryID int64, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("library_id = ? AND book_id IN ?", libraryID, bookIDs).
		Delete(&models.LibraryBook{}).Error
	if err != nil {
		return fmt.Errorf("remove library books: %w", err)
	}
	return nil
}

// SetLibrarian creates the library's librarian or renames the existing one.
func (r *libraryRepository) SetLibrarian(ctx context.Context, librarian *models.Librarian) error {
	err := r.db.WithContext(ctx).
		Omit("Library").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "library_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(librarian).Error
	return translate(err, shared.KindLibrarian, librarian.LibraryID)
}

func link(tx *gorm.DB, libraryID int64, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return nil
	}
	rows := make([]models.LibraryBook, 0, len(bookIDs))
	for _, id := range bookIDs {
		rows = append(rows, models.LibraryBook{LibraryID: libraryID, BookID: id})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return translate(err, shared.KindBook, bookIDs)
	}
	return nil
}
