package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"libraryhub/internal/microservices/http-api/handler"
	"libraryhub/internal/microservices/http-api/models"
	"libraryhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Add(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserService) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) Borrow(ctx context.Context, userID, bookID int64) error {
	return m.Called(ctx, userID, bookID).Error(0)
}

func (m *MockUserService) Return(ctx context.Context, bookID int64) error {
	return m.Called(ctx, bookID).Error(0)
}

func setupUserRouter(svc *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewUserHandler(svc, time.Second).RegisterRoutes(r.Group("/api/users"))
	return r
}

func TestUserHandler_List(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc)
	svc.On("List", mock.Anything).Return([]models.User{
		{ID: 2, Forename: "Jessica", Surname: "Atreides"},
		{ID: 1, Forename: "Paul", Surname: "Atreides"},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":2,"forename":"Jessica","surname":"Atreides"},{"id":1,"forename":"Paul","surname":"Atreides"}]`, w.Body.String())
}

func TestUserHandler_Get(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc)
	svc.On("GetByID", mock.Anything, int64(1)).Return(&models.User{
		ID: 1, Forename: "Paul", Surname: "Atreides",
		Books: []models.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Availability: models.CheckedOut}},
	}, nil)
	svc.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2, Forename: "Jessica", Surname: "Atreides"}, nil)
	svc.On("GetByID", mock.Anything, int64(999)).Return(nil, nil)

	w := doJSON(r, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"forename":"Paul","surname":"Atreides","books":[
		{"id":1,"title":"Dune","author":"Frank Herbert","isbn":"9780441013593","availability":"CheckedOut"}]}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"forename":"Jessica","surname":"Atreides","books":[]}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestUserHandler_AddAndUpdate(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc)

	svc.On("Add", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 4
	}).Return(nil).Once()
	svc.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.ID == 4 })).Return(nil).Once()
	svc.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.ID == 999 })).Return(service.ErrNotFound).Once()

	w := doJSON(r, http.MethodPost, "/api/users", map[string]string{"forename": "Leto", "surname": "Atreides"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"forename":"Leto","surname":"Atreides"}`, w.Body.String())

	w = doJSON(r, http.MethodPut, "/api/users", `{"id":4,"forename":"Leto","surname":"II"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"forename":"Leto","surname":"II"}`, w.Body.String())

	w = doJSON(r, http.MethodPut, "/api/users", `{"id":999,"forename":"a","surname":"b"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users", map[string]string{"forename": "Leto"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestUserHandler_Delete(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("Delete", mock.Anything, int64(999)).Return(service.ErrNotFound)
	svc.On("Delete", mock.Anything, int64(-1)).Return(service.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/users/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, "/api/users/999", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, "/api/users/-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodDelete, "/api/users/x", nil).Code)
}

func TestUserHandler_Borrow(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		svcErr   error
		wantCode int
		wantBody string
	}{
		{"Success", "/api/users/Borrow", `{"userId":1,"bookId":1}`, nil, http.StatusNoContent, ""},
		{"LowerCasePath", "/api/users/borrow", `{"userId":1,"bookId":1}`, nil, http.StatusNoContent, ""},
		{"StringIDs", "/api/users/Borrow", `{"userId":"1","bookId":"1"}`, nil, http.StatusNoContent, ""},
		{"BookMissing", "/api/users/Borrow", `{"userId":1,"bookId":1}`, service.ErrNotFound, http.StatusNotFound, ""},
		{"BookOnLoan", "/api/users/Borrow", `{"userId":1,"bookId":1}`, service.ErrBookNotAvailable,
			http.StatusBadRequest, "Book has been checked out by someone else"},
		{"StorageFault", "/api/users/Borrow", `{"userId":1,"bookId":1}`, errors.New("deadlock"),
			http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			r := setupUserRouter(svc)
			svc.On("Borrow", mock.Anything, int64(1), int64(1)).Return(tt.svcErr).Once()

			w := doJSON(r, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}

	t.Run("ZeroOrMissingBookIDIsNotFound", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)
		svc.On("Borrow", mock.Anything, int64(1), int64(0)).Return(service.ErrNotFound).Twice()

		w := doJSON(r, http.MethodPost, "/api/users/Borrow", `{"userId":1,"bookId":0}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(r, http.MethodPost, "/api/users/Borrow", `{"userId":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("NonNumericBookID", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)

		w := doJSON(r, http.MethodPost, "/api/users/Borrow", `{"userId":1,"bookId":"one"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Return(t *testing.T) {
	t.Run("QueryParameter", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)
		svc.On("Return", mock.Anything, int64(7)).Return(nil).Once()

		w := doJSON(r, http.MethodPost, "/api/users/Return?bookId=7", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("JSONBody", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)
		svc.On("Return", mock.Anything, int64(7)).Return(nil).Once()

		w := doJSON(r, http.MethodPost, "/api/users/return", `{"bookId":7}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("NotCheckedOut", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)
		svc.On("Return", mock.Anything, int64(7)).Return(service.ErrBookNotCheckedOut).Once()

		w := doJSON(r, http.MethodPost, "/api/users/Return?bookId=7", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Book has not been checked out", w.Body.String())
	})

	t.Run("BadQuery", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)

		w := doJSON(r, http.MethodPost, "/api/users/Return?bookId=seven", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ZeroOrMissingBookIDIsNotFound", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)
		svc.On("Return", mock.Anything, int64(0)).Return(service.ErrNotFound).Times(3)

		for _, path := range []string{"/api/users/Return?bookId=0", "/api/users/Return"} {
			w := doJSON(r, http.MethodPost, path, nil)

			assert.Equal(t, http.StatusNotFound, w.Code, path)
			assert.Empty(t, w.Body.String(), path)
		}
		w := doJSON(r, http.MethodPost, "/api/users/Return", `{}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc := new(MockUserService)
		r := setupUserRouter(svc)

		w := doJSON(r, http.MethodPost, "/api/users/Return", `{"bookId":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Return", mock.Anything, mock.Anything)
	})
}
