package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/navigator"
	"bookhub/internal/shared"
)

func cityCentralStore() *stubStore {
	s := achebeStore()
	s.libraries = map[int64]models.Library{5: {ID: 5, Name: "City Central"}}
	s.holdings = []models.LibraryBook{{LibraryID: 5, BookID: 10}, {LibraryID: 5, BookID: 11}}
	s.librarians = map[int64]models.Librarian{5: {ID: 1, Name: "Adaeze Okoye", LibraryID: 5}}
	return s
}

func TestLibraryServiceGet(t *testing.T) {
	ctx := context.Background()
	libs := new(MockLibraryRepository)
	libs.On("GetByID", ctx, int64(5)).Return(&models.Library{ID: 5, Name: "City Central"}, nil)
	svc := NewLibraryService(libs, new(MockBookRepository), navigator.New(cityCentralStore()))

	lib, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	require.Len(t, lib.Books, 2)
	assert.Equal(t, "Chinua Achebe", lib.Books[0].Author.Name)
	require.NotNil(t, lib.Librarian)
	assert.Equal(t, "Adaeze Okoye", lib.Librarian.Name)
}

func TestLibraryServiceLibrarian(t *testing.T) {
	ctx := context.Background()
	store := cityCentralStore()
	libs := new(MockLibraryRepository)
	libs.On("GetByID", ctx, int64(5)).Return(&models.Library{ID: 5}, nil)
	libs.On("GetByID", ctx, int64(6)).Return(&models.Library{ID: 6}, nil)
	libs.On("GetByID", ctx, int64(7)).Return(nil, shared.NewNotFound(shared.KindLibrary, int64(7)))
	svc := NewLibraryService(libs, new(MockBookRepository), navigator.New(store))

	l, err := svc.Librarian(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Adaeze Okoye", l.Name)

	l, err = svc.Librarian(ctx, 6)
	require.NoError(t, err)
	assert.Nil(t, l)

	_, err = svc.Librarian(ctx, 7)
	var nf *shared.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLibraryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown book id is a field error", func(t *testing.T) {
		libs, books := new(MockLibraryRepository), new(MockBookRepository)
		books.On("ExistingIDs", ctx, []int64{10, 99}).Return([]int64{10}, nil)
		svc := NewLibraryService(libs, books, navigator.New(cityCentralStore()))

		_, err := svc.Create(ctx, dto.LibraryRequest{Name: "Harbor", Books: []int64{99, 10, 10}})

		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Map()["books"], "99")
		libs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("holdings are deduplicated", func(t *testing.T) {
		libs, books := new(MockLibraryRepository), new(MockBookRepository)
		books.On("ExistingIDs", ctx, []int64{10, 11}).Return([]int64{10, 11}, nil)
		libs.On("Create", ctx, mock.AnythingOfType("*models.Library"), []int64{10, 11}).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Library).ID = 5 }).
			Return(nil)
		libs.On("GetByID", ctx, int64(5)).Return(&models.Library{ID: 5, Name: "City Central"}, nil)
		svc := NewLibraryService(libs, books, navigator.New(cityCentralStore()))

		lib, err := svc.Create(ctx, dto.LibraryRequest{Name: "City Central", Books: []int64{11, 10, 11}})
		require.NoError(t, err)
		assert.Len(t, lib.Books, 2)
		libs.AssertExpectations(t)
	})
}

func TestLibraryServiceSetLibrarian(t *testing.T) {
	ctx := context.Background()
	libs := new(MockLibraryRepository)
	libs.On("GetByID", ctx, int64(5)).Return(&models.Library{ID: 5}, nil)
	libs.On("SetLibrarian", ctx, mock.MatchedBy(func(l *models.Librarian) bool {
		return l.LibraryID == 5 && l.Name == "Kunle Adeyemi"
	})).Return(nil)
	svc := NewLibraryService(libs, new(MockBookRepository), navigator.New(cityCentralStore()))

	l, err := svc.SetLibrarian(ctx, 5, dto.LibrarianRequest{Name: "Kunle Adeyemi"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), l.LibraryID)

	_, err = svc.SetLibrarian(ctx, 5, dto.LibrarianRequest{})
	var verr *shared.ValidationError
	assert.ErrorAs(t, err, &verr)
	libs.AssertNumberOfCalls(t, "SetLibrarian", 1)
}
