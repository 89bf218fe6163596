package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/handler"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/policy"
	"bookhub/internal/search"
	"bookhub/internal/shared"
)

func libraryRoutes(svc *MockLibraryService) routes {
	return func(rg *gin.RouterGroup) { handler.NewLibraryHandler(svc).RegisterRoutes(rg) }
}

func TestLibraryCreate_NeedsAdmin(t *testing.T) {
	req := dto.LibraryRequest{Name: "City Central Library", Books: []int64{10}}

	t.Run("member is refused", func(t *testing.T) {
		svc := new(MockLibraryService)
		r := setupRouter(member, libraryRoutes(svc))

		w := doJSON(t, r, http.MethodPost, "/api/libraries", req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "wrong_role", decode(t, w)["reason"])
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin creates", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Create", mock.Anything, req).Return(&models.Library{ID: 5, Name: req.Name}, nil)
		r := setupRouter(admin, libraryRoutes(svc))

		w := doJSON(t, r, http.MethodPost, "/api/libraries", req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Create", mock.Anything, req).Return(nil, shared.NewValidationError("books", "Select a valid choice. 10 is not one of the available choices."))
		r := setupRouter(admin, libraryRoutes(svc))

		w := doJSON(t, r, http.MethodPost, "/api/libraries", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLibraryList_Anonymous(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("List", mock.Anything, search.Params{}).Return(emptyLibraryPage(), nil)
	r := setupRouter(policy.Anonymous, libraryRoutes(svc))

	w := doJSON(t, r, http.MethodGet, "/api/libraries", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["data"])
}

func TestLibrarian_None(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("Librarian", mock.Anything, int64(6)).Return(nil, nil)
	r := setupRouter(policy.Anonymous, libraryRoutes(svc))

	w := doJSON(t, r, http.MethodGet, "/api/libraries/6/librarian", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "librarian")
	assert.Nil(t, body["librarian"])
}

func TestLibraryHoldings(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("AddBooks", mock.Anything, int64(5), dto.HoldingsRequest{Books: []int64{11}}).
		Return(&models.Library{ID: 5, Books: []models.Book{{ID: 10}, {ID: 11}}}, nil)
	svc.On("RemoveBooks", mock.Anything, int64(5), dto.HoldingsRequest{Books: []int64{10}}).
		Return(&models.Library{ID: 5, Books: []models.Book{{ID: 11}}}, nil)
	r := setupRouter(admin, libraryRoutes(svc))

	w := doJSON(t, r, http.MethodPost, "/api/libraries/5/books", dto.HoldingsRequest{Books: []int64{11}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["books"], 2)

	w = doJSON(t, r, http.MethodDelete, "/api/libraries/5/books", dto.HoldingsRequest{Books: []int64{10}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["books"], 1)
}

func emptyLibraryPage() *service.Page[models.Library] {
	return &service.Page[models.Library]{Page: 1, PageSize: 20}
}
