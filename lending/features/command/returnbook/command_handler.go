package returnbook

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) (recordstore.StorableDocument, error)
	UpdateOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match, update recordstore.FieldUpdate) error
	DeleteOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) error
}

// Result reports the outcome and the fine charged, zero for an on-time return.
type Result struct {
	shell.HandlerResult
	Fine        decimal.Decimal
	FineCharged bool
}

// CommandHandler runs Query -> Decode -> Decide -> Delete or Update.
type CommandHandler struct {
	store RecordStore
}

func NewCommandHandler(store RecordStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle returns the book or returns shell.ErrLoanNotFound.
// Find and write use the same match, so both address the first matching loan.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = recordstore.WithStrongConsistency(ctx)
	match := shell.MatchLoan(command.EnrollmentNo, command.BookID)

	// Query phase
	loanDocument, err := h.store.FindOne(ctx, shell.CollectionBookIssue, match)

	loanFound := true
	if errors.Is(err, recordstore.ErrDocumentNotFound) {
		loanFound = false
	} else if err != nil {
		return failed(err)
	}

	var loan core.IssuedBook
	if loanFound {
		if loan, err = shell.IssuedBookFromDocument(loanDocument); err != nil {
			return failed(err)
		}
	}

	// Business logic phase
	decision := Decide(loan, loanFound, command)
	if rejection := decision.HasError(); rejection != nil {
		return failed(rejection)
	}

	// Write phase
	switch decision.Outcome {
	case core.DecisionChargeFine:
		update, updateErr := shell.FineUpdate(decision.Fine)
		if updateErr != nil {
			return failed(updateErr)
		}

		if err = h.store.UpdateOne(ctx, shell.CollectionBookIssue, match, update); err != nil {
			return failed(loanGoneIfNotFound(err))
		}

		return Result{HandlerResult: shell.NewSuccessResult(), Fine: decision.Fine, FineCharged: true}, nil

	default:
		if err = h.store.DeleteOne(ctx, shell.CollectionBookIssue, match); err != nil {
			return failed(loanGoneIfNotFound(err))
		}

		return Result{HandlerResult: shell.NewSuccessResult(), Fine: decimal.Zero}, nil
	}
}

// loanGoneIfNotFound covers a loan removed between find and write.
func loanGoneIfNotFound(err error) error {
	if errors.Is(err, recordstore.ErrDocumentNotFound) {
		return errors.Join(core.ErrLoanNotFound, err)
	}

	return err
}

func failed(err error) (Result, error) {
	err = shell.ClassifyError(err)

	return Result{HandlerResult: shell.NewResultFor(err), Fine: decimal.Zero}, err
}
