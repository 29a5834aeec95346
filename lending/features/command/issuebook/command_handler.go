package issuebook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindOne(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) (recordstore.StorableDocument, error)
	InsertOne(ctx context.Context, collection recordstore.CollectionName, document recordstore.StorableDocument) error
}

// Result reports the outcome and, on success, the loan that was written.
type Result struct {
	shell.HandlerResult
	Loan core.IssuedBook
}

// CommandHandler runs Query -> Decode -> Decide -> Insert.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store RecordStore
}

func NewCommandHandler(store RecordStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle issues the book or returns shell.ErrStudentNotFound.
// Store failures are classified as shell.ErrBackendUnavailable.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = recordstore.WithStrongConsistency(ctx)

	// Query phase
	studentDocument, err := h.store.FindOne(ctx, shell.CollectionStudentRecord, shell.MatchStudent(command.EnrollmentNo))

	studentFound := true
	if errors.Is(err, recordstore.ErrDocumentNotFound) {
		studentFound = false
	} else if err != nil {
		return failed(err)
	}

	var student core.StudentRecord
	if studentFound {
		if student, err = shell.StudentRecordFromDocument(studentDocument); err != nil {
			return failed(err)
		}
	}

	// Business logic phase
	decision := Decide(student, studentFound, command)
	if rejection := decision.HasError(); rejection != nil {
		return failed(rejection)
	}

	// Write phase
	loanDocument, err := shell.IssuedBookToDocument(decision.Loan)
	if err != nil {
		return failed(err)
	}

	if err = h.store.InsertOne(ctx, shell.CollectionBookIssue, loanDocument); err != nil {
		return failed(err)
	}

	return Result{HandlerResult: shell.NewSuccessResult(), Loan: decision.Loan}, nil
}

func failed(err error) (Result, error) {
	err = shell.ClassifyError(err)

	return Result{HandlerResult: shell.NewResultFor(err)}, err
}
