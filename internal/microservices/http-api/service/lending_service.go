package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libraryhub/internal/events"
	"libraryhub/internal/microservices/http-api/models"
	"libraryhub/internal/microservices/http-api/repository"
	"libraryhub/internal/observability"
)

const (
	opBorrow = "borrow"
	opReturn = "return"

	publishTimeout = 2 * time.Second
)

// LoanRecorder receives one call per borrow/return attempt.
type LoanRecorder interface {
	RecordLoan(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordLoan(string, string) {}

// LendingService owns the Available <-> CheckedOut transition of a book.
type LendingService interface {
	// Borrow checks bookID out to userID. It fails with ErrNotFound when
	// either row is missing and ErrBookNotAvailable when the book is on loan.
	Borrow(ctx context.Context, userID, bookID int64) error
	// Return checks bookID back in. It fails with ErrNotFound when the book
	// is missing and ErrBookNotCheckedOut when it is not on loan.
	Return(ctx context.Context, bookID int64) error
}

type lendingService struct {
	loans     repository.LoanRepository
	publisher events.Publisher
	recorder  LoanRecorder
	logger    *slog.Logger
}

// NewLendingService wires the lending engine. publisher, recorder and logger
// may be nil.
func NewLendingService(loans repository.LoanRepository, publisher events.Publisher, recorder LoanRecorder, logger *slog.Logger) LendingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &lendingService{
		loans:     loans,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

func (s *lendingService) Borrow(ctx context.Context, userID, bookID int64) error {
	err := s.loans.WithinTx(ctx, func(store repository.LoanStore) error {
		if _, err := store.FindUser(ctx, userID); err != nil {
			return translate("find user", err)
		}

		book, err := store.LockBook(ctx, bookID)
		if err != nil {
			return translate("lock book", err)
		}
		if book.Availability != models.Available {
			return ErrBookNotAvailable
		}

		ok, err := store.CheckOut(ctx, bookID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookNotAvailable
		}
		return nil
	})
	s.finish(ctx, opBorrow, err, events.LoanEvent{
		Type:   events.BookBorrowed,
		BookID: bookID,
		UserID: userID,
	})
	return err
}

func (s *lendingService) Return(ctx context.Context, bookID int64) error {
	var borrower int64
	err := s.loans.WithinTx(ctx, func(store repository.LoanStore) error {
		book, err := store.LockBook(ctx, bookID)
		if err != nil {
			return translate("lock book", err)
		}
		if !book.OnLoan() {
			return ErrBookNotCheckedOut
		}
		if book.BorrowedByID != nil {
			borrower = *book.BorrowedByID
		}

		ok, err := store.CheckIn(ctx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookNotCheckedOut
		}
		return nil
	})
	s.finish(ctx, opReturn, err, events.LoanEvent{
		Type:   events.BookReturned,
		BookID: bookID,
		UserID: borrower,
	})
	return err
}

// finish records the outcome and, once the transaction has committed,
// publishes the event. Publishing failures are logged and never surface to
// the caller.
func (s *lendingService) finish(ctx context.Context, op string, err error, event events.LoanEvent) {
	outcome := outcomeOf(err)
	s.recorder.RecordLoan(op, outcome)

	log := s.logger.With(
		slog.String("operation", op),
		slog.Int64("book_id", event.BookID),
		slog.String("outcome", outcome),
	)
	if event.UserID != 0 {
		log = log.With(slog.Int64("user_id", event.UserID))
	}

	switch outcome {
	case observability.OutcomeError:
		log.ErrorContext(ctx, "loan failed", slog.Any("error", err))
		return
	case observability.OutcomeSuccess:
		log.InfoContext(ctx, "loan committed")
	default:
		log.DebugContext(ctx, "loan refused")
		return
	}

	event.OccurredAt = time.Now().UTC()
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if perr := s.publisher.Publish(pubCtx, event); perr != nil {
		log.WarnContext(ctx, "publish loan event failed", slog.Any("error", perr))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, ErrNotFound):
		return observability.OutcomeNotFound
	case errors.Is(err, ErrBookNotAvailable), errors.Is(err, ErrBookNotCheckedOut):
		return observability.OutcomeRejected
	default:
		return observability.OutcomeError
	}
}
