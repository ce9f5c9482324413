package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	lockForUpdate = clause.Locking{Strength: "UPDATE"}
	lockForShare  = clause.Locking{Strength: "SHARE"}
)

// maxTxAttempts bounds retries of a loan transaction that postgres aborted
// with a serialization failure or deadlock.
const maxTxAttempts = 3

// LoanStore is the view of the catalog available inside one loan transaction.
type LoanStore interface {
	// FindUser reads the user and holds a share lock on the row until commit,
	// so the user can't be deleted underneath a borrow.
	FindUser(ctx context.Context, id int64) (*models.User, error)
	// LockBook reads the book and holds a row lock until commit.
	LockBook(ctx context.Context, id int64) (*models.Book, error)
	// CheckOut moves an Available book to CheckedOut for userID. It reports
	// false when the book was not Available at write time.
	CheckOut(ctx context.Context, bookID, userID int64) (bool, error)
	// CheckIn moves a CheckedOut book back to Available. It reports false
	// when the book was not CheckedOut at write time.
	CheckIn(ctx context.Context, bookID int64) (bool, error)
}

// LoanRepository runs loan operations as single units of work.
type LoanRepository interface {
	// WithinTx runs fn in one transaction: committed if fn returns nil,
	// rolled back otherwise.
	WithinTx(ctx context.Context, fn func(store LoanStore) error) error
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) WithinTx(ctx context.Context, fn func(store LoanStore) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&loanStore{tx: tx})
		})
		if !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("loan transaction failed after %d attempts: %w", maxTxAttempts, err)
}

// isRetryable reports postgres serialization_failure and deadlock_detected.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

type loanStore struct {
	tx *gorm.DB
}

func (s *loanStore) FindUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.tx.WithContext(ctx).Clauses(lockForShare).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *loanStore) LockBook(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := s.tx.WithContext(ctx).Clauses(lockForUpdate).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// The availability guard turns a lost race into zero rows affected.
func (s *loanStore) CheckOut(ctx context.Context, bookID, userID int64) (bool, error) {
	result := s.tx.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND availability = ?", bookID, models.Available).
		Updates(map[string]any{
			"availability":   models.CheckedOut,
			"borrowed_by_id": userID,
		})
	if result.Error != nil {
		return false, fmt.Errorf("check out book: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *loanStore) CheckIn(ctx context.Context, bookID int64) (bool, error) {
	result := s.tx.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND availability = ?", bookID, models.CheckedOut).
		Updates(map[string]any{
			"availability":   models.Available,
			"borrowed_by_id": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("check in book: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
