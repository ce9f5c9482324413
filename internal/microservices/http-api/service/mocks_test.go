package service

import (
	"context"
	"sync"

	"libraryhub/internal/events"
	"libraryhub/internal/microservices/http-api/models"
	"libraryhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) List(ctx context.Context) ([]models.Book, error) {
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

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateDetails(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDetails(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLendingService mocks the LendingService interface
type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) Borrow(ctx context.Context, userID, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockLendingService) Return(ctx context.Context, bookID int64) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

// MockPublisher mocks events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.LoanEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockLoanStore mocks repository.LoanStore for single-transaction tests
type MockLoanStore struct {
	mock.Mock
}

func (m *MockLoanStore) FindUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockLoanStore) LockBook(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockLoanStore) CheckOut(ctx context.Context, bookID, userID int64) (bool, error) {
	args := m.Called(ctx, bookID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanStore) CheckIn(ctx context.Context, bookID int64) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

// storeRunner hands a fixed store to every transaction
type storeRunner struct {
	store repository.LoanStore
}

func (r storeRunner) WithinTx(_ context.Context, fn func(store repository.LoanStore) error) error {
	return fn(r.store)
}

// recorderSpy collects RecordLoan calls
type recorderSpy struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorderSpy) RecordLoan(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, operation+":"+outcome)
}

func (r *recorderSpy) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// memoryCatalog is an in-memory LoanRepository. Transactions are serialized
// by a single mutex and rolled back by restoring a snapshot of the books.
type memoryCatalog struct {
	mu    sync.Mutex
	users map[int64]models.User
	books map[int64]models.Book
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		users: map[int64]models.User{},
		books: map[int64]models.Book{},
	}
}

func (c *memoryCatalog) addUser(id int64, forename, surname string) {
	c.users[id] = models.User{ID: id, Forename: forename, Surname: surname}
}

func (c *memoryCatalog) addBook(id int64, title string) {
	c.books[id] = models.Book{ID: id, Title: title, Author: "author", ISBN: "isbn", Availability: models.Available}
}

func (c *memoryCatalog) lendTo(bookID, userID int64) {
	b := c.books[bookID]
	b.Availability = models.CheckedOut
	b.BorrowedByID = &userID
	c.books[bookID] = b
}

func (c *memoryCatalog) book(id int64) models.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.books[id]
}

// loansOf lists the ids of books on loan to userID.
func (c *memoryCatalog) loansOf(userID int64) []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []int64
	for id, b := range c.books {
		if b.BorrowedByID != nil && *b.BorrowedByID == userID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *memoryCatalog) WithinTx(_ context.Context, fn func(store repository.LoanStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[int64]models.Book, len(c.books))
	for id, b := range c.books {
		snapshot[id] = b
	}
	if err := fn(memoryStore{c}); err != nil {
		c.books = snapshot
		return err
	}
	return nil
}

type memoryStore struct {
	c *memoryCatalog
}

func (s memoryStore) FindUser(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.c.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s memoryStore) LockBook(_ context.Context, id int64) (*models.Book, error) {
	b, ok := s.c.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (s memoryStore) CheckOut(_ context.Context, bookID, userID int64) (bool, error) {
	b, ok := s.c.books[bookID]
	if !ok || b.Availability != models.Available {
		return false, nil
	}
	b.Availability = models.CheckedOut
	b.BorrowedByID = &userID
	s.c.books[bookID] = b
	return true, nil
}

func (s memoryStore) CheckIn(_ context.Context, bookID int64) (bool, error) {
	b, ok := s.c.books[bookID]
	if !ok || b.Availability != models.CheckedOut {
		return false, nil
	}
	b.Availability = models.Available
	b.BorrowedByID = nil
	s.c.books[bookID] = b
	return true, nil
}
